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

package controllers

import (
	"net/http"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/middleware/logger"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/utils"
)

// HealthController reports service liveness and dependency health.
type HealthController interface {
	Health(w http.ResponseWriter, r *http.Request)
}

// HealthCheck probes one dependency. A nil check list means no
// dependencies are required for liveness.
type HealthCheck func(r *http.Request) error

type healthController struct {
	checks map[string]HealthCheck
}

// NewHealthController creates a new health controller
func NewHealthController(checks map[string]HealthCheck) HealthController {
	return &healthController{checks: checks}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (c *healthController) Health(w http.ResponseWriter, r *http.Request) {
	log := logger.GetLogger(r.Context())

	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	if len(c.checks) > 0 {
		resp.Checks = make(map[string]string, len(c.checks))
		for name, check := range c.checks {
			if err := check(r); err != nil {
				log.Warn("health check failed", "check", name, "error", err)
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}
	utils.WriteJSONResponse(w, status, resp)
}
