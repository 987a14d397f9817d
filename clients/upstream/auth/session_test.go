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

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/utils"
)

func TestSessionNotifier(t *testing.T) {
	t.Run("Delivers the reason to every handler in subscription order", func(t *testing.T) {
		notifier := NewSessionNotifier()
		first := &captureHandler{}
		second := &captureHandler{}
		notifier.Subscribe(first)
		notifier.Subscribe(second)

		notifier.Terminate(utils.ErrSessionExpired)

		require.Equal(t, 1, first.count())
		require.Equal(t, 1, second.count())
		assert.ErrorIs(t, first.reasons[0], utils.ErrSessionExpired)
	})

	t.Run("Ignores nil handlers", func(t *testing.T) {
		notifier := NewSessionNotifier()
		notifier.Subscribe(nil)
		notifier.Terminate(utils.ErrSessionExpired) // must not panic
	})
}

func TestLoginRedirector(t *testing.T) {
	t.Run("Navigates to sign-in when the session terminates elsewhere", func(t *testing.T) {
		var navigated []string
		redirector := NewLoginRedirector("/login", func(path string) {
			navigated = append(navigated, path)
		})
		redirector.SetLocation("/dashboard")

		redirector.SessionTerminated(utils.ErrSessionExpired)

		require.Equal(t, []string{"/login"}, navigated)
		assert.Equal(t, "/login", redirector.Location())
	})

	t.Run("Skips the redirect when already at sign-in", func(t *testing.T) {
		var navigated []string
		redirector := NewLoginRedirector("/login", func(path string) {
			navigated = append(navigated, path)
		})
		redirector.SetLocation("/login")

		redirector.SessionTerminated(utils.ErrSessionExpired)

		assert.Empty(t, navigated)
	})

	t.Run("A second termination signal does not navigate again", func(t *testing.T) {
		var navigated []string
		redirector := NewLoginRedirector("/login", func(path string) {
			navigated = append(navigated, path)
		})
		redirector.SetLocation("/settings")

		redirector.SessionTerminated(utils.ErrSessionExpired)
		redirector.SessionTerminated(utils.ErrRenewalFailed)

		assert.Equal(t, []string{"/login"}, navigated)
	})

	t.Run("Navigation after the redirect re-arms the guard", func(t *testing.T) {
		var navigated []string
		redirector := NewLoginRedirector("/login", func(path string) {
			navigated = append(navigated, path)
		})

		redirector.SetLocation("/reports")
		redirector.SessionTerminated(utils.ErrSessionExpired)
		redirector.SetLocation("/reports")
		redirector.SessionTerminated(utils.ErrSessionExpired)

		assert.Equal(t, []string{"/login", "/login"}, navigated)
	})
}
