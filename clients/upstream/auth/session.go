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
	"log/slog"
	"sync"
)

// TerminationHandler observes the end of a proxy session. The hosting
// surface registers one to route the user back to sign-in.
type TerminationHandler interface {
	// SessionTerminated is called with the unrecoverable reason:
	// utils.ErrSessionExpired or an error wrapping
	// utils.ErrRenewalFailed.
	SessionTerminated(reason error)
}

// SessionNotifier fans a session-termination signal out to registered
// handlers. The coordinator raises the signal at most once per failed
// renewal cycle.
type SessionNotifier struct {
	mu       sync.Mutex
	handlers []TerminationHandler
}

// NewSessionNotifier creates an empty notifier.
func NewSessionNotifier() *SessionNotifier {
	return &SessionNotifier{}
}

// Subscribe registers a handler for subsequent termination signals.
func (n *SessionNotifier) Subscribe(h TerminationHandler) {
	if h == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, h)
}

// Terminate delivers the termination reason to every registered handler,
// in subscription order.
func (n *SessionNotifier) Terminate(reason error) {
	n.mu.Lock()
	handlers := make([]TerminationHandler, len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.Unlock()

	for _, h := range handlers {
		h.SessionTerminated(reason)
	}
}

// LoginRedirector routes the hosting surface to its sign-in location
// when the session terminates. The redirect is idempotent: a signal
// raised while the surface is already at the sign-in location does not
// navigate again.
type LoginRedirector struct {
	loginPath string
	navigate  func(path string)

	mu       sync.Mutex
	location string
}

var _ TerminationHandler = (*LoginRedirector)(nil)

// NewLoginRedirector creates a redirector. navigate is invoked with
// loginPath when a session terminates away from the sign-in location.
func NewLoginRedirector(loginPath string, navigate func(path string)) *LoginRedirector {
	return &LoginRedirector{
		loginPath: loginPath,
		navigate:  navigate,
	}
}

// SetLocation records the surface's current location. The hosting
// application calls this on navigation.
func (r *LoginRedirector) SetLocation(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = path
}

// Location returns the last recorded location.
func (r *LoginRedirector) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// SessionTerminated navigates to the sign-in location unless the surface
// is already there.
func (r *LoginRedirector) SessionTerminated(reason error) {
	r.mu.Lock()
	if r.location == r.loginPath {
		r.mu.Unlock()
		slog.Debug("session terminated while already at sign-in, skipping redirect")
		return
	}
	r.location = r.loginPath
	r.mu.Unlock()

	slog.Info("session terminated, redirecting to sign-in",
		slog.String("reason", reason.Error()))
	if r.navigate != nil {
		r.navigate(r.loginPath)
	}
}
