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

package dbmigrations

import (
	"gorm.io/gorm"
)

// Create the proxy_credentials table. One row per proxy session; tokens
// are opaque strings, stored as-is.
var migration001 = migration{
	ID: 1,
	Migrate: func(db *gorm.DB) error {
		createProxyCredentialsSQL := `
			CREATE TABLE proxy_credentials (
				session_key VARCHAR(255) PRIMARY KEY NOT NULL,
				access_token TEXT NOT NULL DEFAULT '',
				refresh_token TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			);
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, createProxyCredentialsSQL)
		})
	},
}
