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

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Version is overridden at build time via ldflags
var Version = "dev"

var (
	config   *Config
	loadOnce sync.Once
)

// GetConfig loads the configuration from the environment on first use.
// Invalid or missing required values are collected and terminate the
// process with one consolidated report.
func GetConfig() *Config {
	loadOnce.Do(loadEnvs)
	return config
}

func loadEnvs() {
	config = &Config{}

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath != "" {
		err := godotenv.Load(envFilePath)
		if err != nil {
			panic(err)
		}
	}

	r := &configReader{}
	config.PackageVersion = r.readOptionalString("APS_VERSION", Version)
	config.ServerHost = r.readOptionalString("SERVER_HOST", "")
	config.ServerPort = int(r.readOptionalInt64("SERVER_PORT", 8090))
	config.AutoMaxProcsEnabled = r.readOptionalBool("AUTO_MAX_PROCS_ENABLED", true)

	// Logging configuration
	config.LogLevel = r.readOptionalString("LOG_LEVEL", "INFO")

	// HTTP Server timeout configurations
	config.ReadTimeoutSeconds = int(r.readOptionalInt64("HTTP_READ_TIMEOUT_SECONDS", 10))
	config.WriteTimeoutSeconds = int(r.readOptionalInt64("HTTP_WRITE_TIMEOUT_SECONDS", 90))
	config.IdleTimeoutSeconds = int(r.readOptionalInt64("HTTP_IDLE_TIMEOUT_SECONDS", 60))
	config.MaxHeaderBytes = int(r.readOptionalInt64("HTTP_MAX_HEADER_BYTES", 65536)) // 1024 * 64

	// Upstream API configuration
	config.Upstream = UpstreamConfig{
		BaseURL:               r.readRequiredString("UPSTREAM_BASE_URL"),
		RenewalPath:           r.readOptionalString("UPSTREAM_RENEWAL_PATH", "/auth/refresh-token"),
		RenewalTimeoutSeconds: int(r.readOptionalInt64("UPSTREAM_RENEWAL_TIMEOUT_SECONDS", 15)),
		LoginPath:             r.readOptionalString("UPSTREAM_LOGIN_PATH", "/login"),
		Probe: ProbeConfig{
			Enabled:     r.readOptionalBool("UPSTREAM_PROBE_ENABLED", true),
			Path:        r.readOptionalString("UPSTREAM_PROBE_PATH", "/health"),
			RetryMax:    int(r.readOptionalInt64("UPSTREAM_PROBE_RETRY_MAX", 4)),
			WaitSeconds: int(r.readOptionalInt64("UPSTREAM_PROBE_WAIT_SECONDS", 2)),
		},
	}

	// Credential store configuration
	config.CredentialStore = CredentialStoreConfig{
		Backend:          r.readOptionalString("CREDENTIAL_STORE_BACKEND", "memory"),
		SessionKey:       r.readOptionalString("CREDENTIAL_SESSION_KEY", "default"),
		SeedAccessToken:  r.readOptionalString("SEED_ACCESS_TOKEN", ""),
		SeedRefreshToken: r.readOptionalString("SEED_REFRESH_TOKEN", ""),
	}

	// Database configs are only required for the postgres backend
	if config.CredentialStore.Backend == "postgres" {
		config.POSTGRESQL = POSTGRESQL{
			Host:     r.readRequiredString("DB_HOST"),
			Port:     int(r.readOptionalInt64("DB_PORT", 5432)),
			User:     r.readRequiredString("DB_USER"),
			Password: r.readRequiredString("DB_PASSWORD"),
			DBName:   r.readRequiredString("DB_NAME"),
		}
		config.POSTGRESQL.DbConfigs = DbConfigs{
			// gorm configs
			SkipDefaultTransaction:    r.readOptionalBool("GORM_SKIP_DEFAULT_TRANSACTION", true),
			SlowThresholdMilliseconds: r.readOptionalInt64("GORM_SLOW_THRESHOLD_MILLISECONDS", 200),

			// sql.DB configs
			MaxIdleCount:       r.readNullableInt64("DB_MAX_IDLE_COUNT"),
			MaxOpenCount:       r.readNullableInt64("DB_MAX_OPEN_COUNT"),
			MaxIdleTimeSeconds: r.readNullableInt64("DB_MAX_IDLE_TIME_SECONDS"),
			MaxLifetimeSeconds: r.readNullableInt64("DB_MAX_LIFETIME_SECONDS"),
		}
	}

	// Database operation timeout configuration
	config.DbOperationTimeoutSeconds = int(r.readOptionalInt64("DB_OPERATION_TIMEOUT_SECONDS", 10))
	config.HealthCheckTimeoutSeconds = int(r.readOptionalInt64("HEALTH_CHECK_TIMEOUT_SECONDS", 5))

	config.RoutesConfigPath = r.readOptionalString("ROUTES_CONFIG_PATH", "routes.yaml")

	// Validate HTTP server configurations
	validateHTTPServerConfigs(config, r)
	validateUpstreamConfigs(config, r)

	r.logAndExitIfErrorsFound()

	slog.Info("configReader: configs loaded")
}

func validateHTTPServerConfigs(cfg *Config, r *configReader) {
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		r.errors = append(r.errors, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort))
	}
	if cfg.ReadTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.ReadTimeoutSeconds))
	}
	if cfg.WriteTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_WRITE_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.WriteTimeoutSeconds))
	}
	if cfg.ReadTimeoutSeconds >= cfg.WriteTimeoutSeconds {
		r.errors = append(r.errors, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS (%d) must be < HTTP_WRITE_TIMEOUT_SECONDS (%d)",
			cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds))
	}
	if cfg.IdleTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_IDLE_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.IdleTimeoutSeconds))
	}
	if cfg.MaxHeaderBytes < 1024 || cfg.MaxHeaderBytes > 1048576 { // 1KB to 1MB
		r.errors = append(r.errors, fmt.Errorf("HTTP_MAX_HEADER_BYTES must be between 1024 and 1048576, got %d", cfg.MaxHeaderBytes))
	}
}

func validateUpstreamConfigs(cfg *Config, r *configReader) {
	if cfg.Upstream.RenewalTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("UPSTREAM_RENEWAL_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.Upstream.RenewalTimeoutSeconds))
	}
	switch cfg.CredentialStore.Backend {
	case "memory", "postgres":
	default:
		r.errors = append(r.errors, fmt.Errorf("CREDENTIAL_STORE_BACKEND must be memory or postgres, got %q", cfg.CredentialStore.Backend))
	}
	if cfg.CredentialStore.SessionKey == "" {
		r.errors = append(r.errors, fmt.Errorf("CREDENTIAL_SESSION_KEY must be non-empty"))
	}
}
