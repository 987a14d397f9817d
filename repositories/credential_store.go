/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package repositories

import (
	"context"
	"fmt"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/credentials"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/models"
)

// PostgresCredentialStore adapts CredentialRepository to the gateway's
// credentials.Store contract, so proxy sessions survive restarts. An
// UpdateAccessToken on a session with no stored row is treated as an
// upsert of the access token alone: the gateway may legitimately renew
// before any refresh token was persisted by an operator.
type PostgresCredentialStore struct {
	repo       CredentialRepository
	sessionKey string
}

var _ credentials.Store = (*PostgresCredentialStore)(nil)

// NewPostgresCredentialStore creates a Store bound to one session key.
func NewPostgresCredentialStore(repo CredentialRepository, sessionKey string) *PostgresCredentialStore {
	return &PostgresCredentialStore{repo: repo, sessionKey: sessionKey}
}

// Access returns the stored access credential, or "" when absent.
func (s *PostgresCredentialStore) Access(ctx context.Context) (string, error) {
	cred, err := s.repo.GetCredential(ctx, s.sessionKey)
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	if cred == nil {
		return "", nil
	}
	return cred.AccessToken, nil
}

// Refresh returns the stored refresh credential, or "" when absent.
func (s *PostgresCredentialStore) Refresh(ctx context.Context) (string, error) {
	cred, err := s.repo.GetCredential(ctx, s.sessionKey)
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	if cred == nil {
		return "", nil
	}
	return cred.RefreshToken, nil
}

// SetAccess replaces the stored access credential.
func (s *PostgresCredentialStore) SetAccess(ctx context.Context, token string) error {
	cred, err := s.repo.GetCredential(ctx, s.sessionKey)
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}
	if cred == nil {
		return s.repo.UpsertCredential(ctx, &models.Credential{
			SessionKey:  s.sessionKey,
			AccessToken: token,
		})
	}
	return s.repo.UpdateAccessToken(ctx, s.sessionKey, token)
}

// Clear removes the stored credential pair.
func (s *PostgresCredentialStore) Clear(ctx context.Context) error {
	return s.repo.ClearCredential(ctx, s.sessionKey)
}
