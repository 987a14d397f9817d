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

package models

import "time"

// Credential is the persisted credential pair for one proxy session.
// Both tokens are opaque bearer strings with server-determined lifetimes;
// the proxy never inspects them.
type Credential struct {
	// SessionKey identifies the proxy session owning this credential pair
	SessionKey string `json:"session_key" gorm:"column:session_key;primaryKey"`
	// AccessToken is the short-lived credential stamped on upstream calls
	AccessToken string `json:"-" gorm:"column:access_token"`
	// RefreshToken is the longer-lived credential exchanged for new access tokens
	RefreshToken string    `json:"-" gorm:"column:refresh_token"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName overrides the default GORM table name
func (Credential) TableName() string {
	return "proxy_credentials"
}

// RenewalRequest is the payload posted to the upstream renewal endpoint
type RenewalRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RenewalTokens carries the renewed access credential. Additional fields
// returned by the upstream are ignored.
type RenewalTokens struct {
	AccessToken string `json:"accessToken"`
}

// RenewalResponse is the upstream renewal endpoint's success body
type RenewalResponse struct {
	Tokens RenewalTokens `json:"tokens"`
}
