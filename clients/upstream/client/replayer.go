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

package client

import (
	"context"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/middleware/logger"
)

// replay re-submits a request once with the renewed credential. The
// retried marker is set before the attempt, so any failure here —
// including another 401 — is terminal and cannot queue a second renewal.
func (c *upstreamClient) replay(ctx context.Context, rec *requestRecord, token string) (*requests.Result, error) {
	rec.retried = true
	stampBearer(rec.req, token)

	logger.GetLogger(ctx).Debug("replaying request with renewed credential",
		"request", rec.req.Name,
		"requestID", rec.req.ID().String())

	res := requests.SendRequest(ctx, c.httpClient, rec.req)
	if succeeded(res) {
		return res, nil
	}

	cls := Classify(res, rec.retried)
	c.observe(ctx, rec, cls, res)
	if res.Err() != nil {
		return nil, res.Err()
	}
	return res, res.HttpError()
}
