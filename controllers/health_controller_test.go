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

package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthController(t *testing.T) {
	t.Run("Healthy with no checks", func(t *testing.T) {
		health := NewHealthController(nil)

		rec := httptest.NewRecorder()
		health.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Healthy when every check passes", func(t *testing.T) {
		health := NewHealthController(map[string]HealthCheck{
			"database": func(r *http.Request) error { return nil },
		})

		rec := httptest.NewRecorder()
		health.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Degraded when a check fails", func(t *testing.T) {
		health := NewHealthController(map[string]HealthCheck{
			"database": func(r *http.Request) error { return fmt.Errorf("connection refused") },
		})

		rec := httptest.NewRecorder()
		health.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
