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

// Package credentials defines the credential store contract the gateway
// depends on, plus an in-memory implementation for single-session use.
// The store is an opaque key-value collaborator: the gateway reads and
// replaces tokens through it but never inspects them.
package credentials

import (
	"context"
	"sync"
)

// Store holds one access/refresh credential pair. Empty string means
// absent. Implementations must be safe for concurrent use; the gateway's
// refresh coordinator is the only writer during normal operation.
type Store interface {
	// Access returns the current access credential, or "" when absent.
	Access(ctx context.Context) (string, error)

	// Refresh returns the current refresh credential, or "" when absent.
	Refresh(ctx context.Context) (string, error)

	// SetAccess replaces the access credential.
	SetAccess(ctx context.Context, token string) error

	// Clear removes both credentials. Called when the session terminates.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process Store for single-session deployments and
// tests.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore seeded with the given credentials.
// Either value may be empty.
func NewMemoryStore(access, refresh string) *MemoryStore {
	return &MemoryStore{access: access, refresh: refresh}
}

// Access returns the current access credential.
func (s *MemoryStore) Access(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, nil
}

// Refresh returns the current refresh credential.
func (s *MemoryStore) Refresh(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, nil
}

// SetAccess replaces the access credential.
func (s *MemoryStore) SetAccess(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	return nil
}

// SetRefresh replaces the refresh credential. Used when the hosting
// application establishes a new session.
func (s *MemoryStore) SetRefresh(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = token
	return nil
}

// Clear removes both credentials.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
