// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package credentials

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the seeded credential pair", func(t *testing.T) {
		store := NewMemoryStore("access-1", "refresh-1")

		access, err := store.Access(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access-1", access)

		refresh, err := store.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, "refresh-1", refresh)
	})

	t.Run("SetAccess replaces only the access credential", func(t *testing.T) {
		store := NewMemoryStore("access-1", "refresh-1")
		require.NoError(t, store.SetAccess(ctx, "access-2"))

		access, _ := store.Access(ctx)
		refresh, _ := store.Refresh(ctx)
		assert.Equal(t, "access-2", access)
		assert.Equal(t, "refresh-1", refresh)
	})

	t.Run("Clear removes both credentials", func(t *testing.T) {
		store := NewMemoryStore("access-1", "refresh-1")
		require.NoError(t, store.Clear(ctx))

		access, _ := store.Access(ctx)
		refresh, _ := store.Refresh(ctx)
		assert.Empty(t, access)
		assert.Empty(t, refresh)
	})

	t.Run("Safe under concurrent readers and writers", func(t *testing.T) {
		store := NewMemoryStore("access-1", "refresh-1")

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = store.Access(ctx)
			}()
			go func() {
				defer wg.Done()
				_ = store.SetAccess(ctx, "access-2")
			}()
		}
		wg.Wait()

		access, err := store.Access(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access-2", access)
	})
}
