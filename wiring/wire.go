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

//go:build wireinject
// +build wireinject

package wiring

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/wire"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/auth"
	upstreamclient "github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/client"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/controllers"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/credentials"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/db"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/repositories"
)

var configProviderSet = wire.NewSet(
	ProvideConfigFromPtr,
	ProvideRouteTable,
)

var sessionProviderSet = wire.NewSet(
	auth.NewSessionNotifier,
	ProvideLoginRedirector,
)

var upstreamProviderSet = wire.NewSet(
	ProvideCredentialStore,
	ProvideCoordinator,
	ProvideUpstreamClient,
)

var controllerProviderSet = wire.NewSet(
	ProvideProxyController,
	ProvideHealthController,
)

var loggerProviderSet = wire.NewSet(
	ProvideLogger,
)

// ProvideLogger provides the configured slog.Logger instance
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

// ProvideRouteTable loads the proxy route table from disk
func ProvideRouteTable(cfg config.Config) (*config.RouteTable, error) {
	return config.LoadRouteTable(cfg.RoutesConfigPath)
}

// ProvideLoginRedirector creates the sign-in redirector and subscribes it
// to session termination signals.
func ProvideLoginRedirector(cfg config.Config, notifier *auth.SessionNotifier) *auth.LoginRedirector {
	redirector := auth.NewLoginRedirector(cfg.Upstream.LoginPath, nil)
	notifier.Subscribe(redirector)
	return redirector
}

// ProvideCredentialStore selects the credential store backend.
func ProvideCredentialStore(cfg config.Config) credentials.Store {
	if cfg.CredentialStore.Backend == "postgres" {
		repo := repositories.NewCredentialRepo(db.DB)
		return repositories.NewPostgresCredentialStore(repo, cfg.CredentialStore.SessionKey)
	}
	return credentials.NewMemoryStore(
		cfg.CredentialStore.SeedAccessToken,
		cfg.CredentialStore.SeedRefreshToken,
	)
}

// ProvideCoordinator creates the single-flight renewal coordinator.
func ProvideCoordinator(cfg config.Config, store credentials.Store, notifier *auth.SessionNotifier) *auth.Coordinator {
	return auth.NewCoordinator(auth.Config{
		RenewalURL:     strings.TrimSuffix(cfg.Upstream.BaseURL, "/") + cfg.Upstream.RenewalPath,
		RenewalTimeout: time.Duration(cfg.Upstream.RenewalTimeoutSeconds) * time.Second,
	}, store, &http.Client{}, notifier)
}

// ProvideUpstreamClient creates the authenticated upstream client.
func ProvideUpstreamClient(store credentials.Store, coordinator *auth.Coordinator) (upstreamclient.UpstreamClient, error) {
	return upstreamclient.NewUpstreamClient(upstreamclient.Config{
		Store:       store,
		Coordinator: coordinator,
	})
}

// ProvideProxyController creates the proxy controller
func ProvideProxyController(
	upstream upstreamclient.UpstreamClient,
	routes *config.RouteTable,
	cfg config.Config,
	redirector *auth.LoginRedirector,
) controllers.ProxyController {
	return controllers.NewProxyController(upstream, nil, routes, cfg.Upstream, redirector)
}

// ProvideHealthController creates the health controller with backend checks
func ProvideHealthController(cfg config.Config) controllers.HealthController {
	checks := map[string]controllers.HealthCheck{}
	if cfg.CredentialStore.Backend == "postgres" {
		timeout := time.Duration(cfg.HealthCheckTimeoutSeconds) * time.Second
		checks["database"] = func(r *http.Request) error {
			return db.Healthy(r.Context(), timeout)
		}
	}
	return controllers.NewHealthController(checks)
}

func InitializeAppParams(cfg *config.Config) (*AppParams, error) {
	wire.Build(
		configProviderSet,
		loggerProviderSet,
		sessionProviderSet,
		upstreamProviderSet,
		controllerProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return &AppParams{}, nil
}
