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

package config

// Config holds all configuration for the application
type Config struct {
	PackageVersion      string
	ServerHost          string
	ServerPort          int
	AutoMaxProcsEnabled bool
	LogLevel            string

	// HTTP Server timeout configurations
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
	MaxHeaderBytes      int

	// Database operation timeout configuration
	DbOperationTimeoutSeconds int
	HealthCheckTimeoutSeconds int

	// Upstream API configuration
	Upstream UpstreamConfig

	// Credential store configuration
	CredentialStore CredentialStoreConfig

	POSTGRESQL POSTGRESQL

	// RoutesConfigPath points to the YAML proxy route table
	RoutesConfigPath string
}

// UpstreamConfig holds upstream API configuration
type UpstreamConfig struct {
	// BaseURL is the upstream API base URL
	BaseURL string

	// RenewalPath is the credential renewal endpoint, relative to BaseURL
	RenewalPath string

	// RenewalTimeoutSeconds bounds a single renewal call
	RenewalTimeoutSeconds int

	// LoginPath is the hosting surface's sign-in location, used by the
	// session-termination redirect
	LoginPath string

	// Probe configures the boot-time upstream connectivity probe
	Probe ProbeConfig
}

// ProbeConfig holds the boot-time connectivity probe configuration
type ProbeConfig struct {
	Enabled     bool
	Path        string
	RetryMax    int
	WaitSeconds int
}

// CredentialStoreConfig selects and seeds the credential store backend
type CredentialStoreConfig struct {
	// Backend is "memory" or "postgres"
	Backend string

	// SessionKey identifies this proxy's session in the postgres backend
	SessionKey string

	// Seed credentials for the memory backend. Either may be empty.
	SeedAccessToken  string `json:"-"`
	SeedRefreshToken string `json:"-"`
}

// POSTGRESQL holds the database connection configuration
type POSTGRESQL struct {
	Host      string
	Port      int
	User      string
	Password  string `json:"-"`
	DBName    string
	DbConfigs DbConfigs
}

// DbConfigs holds GORM and sql.DB tuning
type DbConfigs struct {
	SkipDefaultTransaction    bool
	SlowThresholdMilliseconds int64

	MaxIdleCount       *int64
	MaxOpenCount       *int64
	MaxIdleTimeSeconds *int64
	MaxLifetimeSeconds *int64
}
