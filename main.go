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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/db"
	dbmigrations "github.com/wso2/ai-agent-management-platform/api-proxy-service/db_migrations"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/server"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/signals"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/wiring"
)

func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default to INFO
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Logger configured",
		"level", level.String())
}

func main() {
	cfg := config.GetConfig()

	setupLogger(cfg)

	if cfg.AutoMaxProcsEnabled {
		if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			// Convert printf-style format string to plain message for structured logging
			slog.Info(fmt.Sprintf(format, args...))
		})); err != nil {
			slog.Error("Failed to set maxprocs", "error", err)
			os.Exit(1)
		}
	}

	serverFlag := flag.Bool("server", true, "start the http server")
	migrateFlag := flag.Bool("migrate", false, "migrate the database")

	flag.Parse()

	if cfg.CredentialStore.Backend == "postgres" {
		if err := db.Init(&cfg.POSTGRESQL); err != nil {
			slog.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database", "error", err)
			}
		}()
	}

	if *migrateFlag {
		if cfg.CredentialStore.Backend != "postgres" {
			slog.Error("migrations require the postgres credential store backend")
			os.Exit(1)
		}
		if err := dbmigrations.Migrate(db.DB(context.Background())); err != nil {
			slog.Error("error occurred while migrating", "error", err)
			os.Exit(1)
		}
	}

	if !*serverFlag {
		return
	}

	ctx := signals.SetupSignalHandler()

	if cfg.Upstream.Probe.Enabled {
		if err := server.ProbeUpstream(ctx, cfg.Upstream); err != nil {
			slog.Error("upstream probe failed", "error", err)
			os.Exit(1)
		}
	}

	dependencies, err := wiring.InitializeAppParams(cfg)
	if err != nil {
		slog.Error("failed to initialize app dependencies", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, dependencies.ProxyController, dependencies.HealthController)

	go func() {
		<-ctx.Done()
		slog.Info("Shutdown signal received, stopping proxy server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Proxy server forced shutdown after timeout", "error", err)
		}
	}()

	slog.Info("Proxy server is running",
		"address", fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		"upstream", cfg.Upstream.BaseURL,
		"credentialStoreBackend", cfg.CredentialStore.Backend)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Failed to start proxy server", "error", err)
		os.Exit(1)
	}

	slog.Info("Proxy server shut down successfully")
}
