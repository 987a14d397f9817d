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

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
)

// ProbeUpstream checks upstream reachability at boot, retrying with
// backoff. The request path performs no transient retries of its own,
// so this is the one place the service waits out a briefly unavailable
// upstream.
func ProbeUpstream(ctx context.Context, cfg config.UpstreamConfig) error {
	if !cfg.Probe.Enabled {
		return nil
	}

	probeURL := strings.TrimSuffix(cfg.BaseURL, "/") + cfg.Probe.Path

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Probe.RetryMax
	retryClient.RetryWaitMin = time.Duration(cfg.Probe.WaitSeconds) * time.Second
	retryClient.Logger = slog.Default().With(slog.String("probe", probeURL))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := retryClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream probe failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("upstream probe returned status %d", resp.StatusCode)
	}
	slog.Info("upstream reachable", slog.String("url", probeURL), slog.Int("status", resp.StatusCode))
	return nil
}
