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

package wiring

import (
	"log/slog"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/auth"
	upstreamclient "github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/client"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/controllers"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/credentials"
)

// AppParams contains all wired application dependencies
type AppParams struct {
	Logger *slog.Logger

	// Controllers
	ProxyController  controllers.ProxyController
	HealthController controllers.HealthController

	// Session lifecycle
	SessionNotifier *auth.SessionNotifier
	LoginRedirector *auth.LoginRedirector

	// Upstream plumbing, exposed for tests and diagnostics
	CredentialStore credentials.Store
	UpstreamClient  upstreamclient.UpstreamClient
}

func ProvideConfigFromPtr(config *config.Config) config.Config {
	return *config
}
