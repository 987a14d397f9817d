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
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/models"
)

// CredentialRepository defines the interface for credential data access
type CredentialRepository interface {
	GetCredential(ctx context.Context, sessionKey string) (*models.Credential, error)
	UpsertCredential(ctx context.Context, cred *models.Credential) error
	UpdateAccessToken(ctx context.Context, sessionKey, accessToken string) error
	ClearCredential(ctx context.Context, sessionKey string) error
}

// CredentialRepo implements CredentialRepository using GORM
type CredentialRepo struct {
	db func(ctx context.Context) *gorm.DB
}

// NewCredentialRepo creates a new credential repository. dbFn resolves
// the context-bound GORM handle, matching db.DB.
func NewCredentialRepo(dbFn func(ctx context.Context) *gorm.DB) CredentialRepository {
	return &CredentialRepo{db: dbFn}
}

// GetCredential retrieves the credential pair for a session, or nil when
// none is stored.
func (r *CredentialRepo) GetCredential(ctx context.Context, sessionKey string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db(ctx).Where("session_key = ?", sessionKey).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

// UpsertCredential inserts or replaces the credential pair for a session
func (r *CredentialRepo) UpsertCredential(ctx context.Context, cred *models.Credential) error {
	now := time.Now()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now
	return r.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "updated_at"}),
	}).Create(cred).Error
}

// UpdateAccessToken replaces only the access token for a session
func (r *CredentialRepo) UpdateAccessToken(ctx context.Context, sessionKey, accessToken string) error {
	return r.db(ctx).Model(&models.Credential{}).
		Where("session_key = ?", sessionKey).
		Updates(map[string]interface{}{
			"access_token": accessToken,
			"updated_at":   time.Now(),
		}).Error
}

// ClearCredential removes the credential pair for a session
func (r *CredentialRepo) ClearCredential(ctx context.Context, sessionKey string) error {
	return r.db(ctx).Where("session_key = ?", sessionKey).Delete(&models.Credential{}).Error
}
