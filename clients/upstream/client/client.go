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

// Package client provides the authenticated upstream gateway: every call
// is stamped with the current access credential, and an expired
// credential is renewed transparently — once per request, one renewal
// per expiry burst — before the call is replayed.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/auth"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/credentials"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/middleware/logger"
)

// Config contains configuration for the upstream client
type Config struct {
	// Store holds the session's credential pair
	Store credentials.Store

	// Coordinator performs single-flight credential renewal
	Coordinator *auth.Coordinator

	// HttpClient is the transport used for upstream calls. Defaults to
	// a plain http.Client; the gateway adds no transient-failure
	// retries of its own.
	HttpClient requests.HttpClient
}

// UpstreamClient sends authenticated requests to the upstream API.
type UpstreamClient interface {
	// Do sends the request through the authenticated pipeline. On a
	// 2xx response it returns (result, nil). On any terminal failure
	// the original failure is returned unchanged: (result, *HttpError)
	// when the upstream responded, (nil, err) for transport failures
	// and for session termination (utils.ErrSessionExpired, or an
	// error wrapping utils.ErrRenewalFailed).
	Do(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error)
}

type upstreamClient struct {
	store       credentials.Store
	coordinator *auth.Coordinator
	httpClient  requests.HttpClient
}

// requestRecord is one in-flight call with its one-shot retry marker.
// A record is replayed at most once; a second authentication failure on
// the same record is terminal.
type requestRecord struct {
	req     *requests.HttpRequest
	retried bool
}

// NewUpstreamClient creates an upstream gateway client.
func NewUpstreamClient(cfg Config) (UpstreamClient, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if cfg.Coordinator == nil {
		return nil, fmt.Errorf("refresh coordinator is required")
	}
	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &upstreamClient{
		store:       cfg.Store,
		coordinator: cfg.Coordinator,
		httpClient:  httpClient,
	}, nil
}

func (c *upstreamClient) Do(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
	rec := &requestRecord{req: req}

	res, err := c.send(ctx, rec)
	if err != nil {
		return nil, err
	}
	if succeeded(res) {
		return res, nil
	}

	cls := Classify(res, rec.retried)
	if !cls.Recoverable() {
		c.observe(ctx, rec, cls, res)
		if res.Err() != nil {
			return nil, res.Err()
		}
		return res, res.HttpError()
	}

	token, err := c.coordinator.Renew(ctx)
	if err != nil {
		return nil, err
	}
	return c.replay(ctx, rec, token)
}

// send stamps the current access credential and performs one transport
// attempt.
func (c *upstreamClient) send(ctx context.Context, rec *requestRecord) (*requests.Result, error) {
	token, err := c.store.Access(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read access credential: %w", err)
	}
	stampBearer(rec.req, token)
	return requests.SendRequest(ctx, c.httpClient, rec.req), nil
}

// observe logs a terminal classification. The caller still receives the
// original failure unchanged.
func (c *upstreamClient) observe(ctx context.Context, rec *requestRecord, cls Classification, res *requests.Result) {
	log := logger.GetLogger(ctx).With(
		slog.String("request", rec.req.Name),
		slog.String("requestID", rec.req.ID().String()),
		slog.String("classification", string(cls)),
	)
	if res.Err() != nil {
		log.Warn("upstream request failed", slog.String("error", res.Err().Error()))
		return
	}
	log.Warn("upstream request failed", slog.Int("status", res.StatusCode()))
}

func succeeded(res *requests.Result) bool {
	return res.Err() == nil && res.StatusCode() >= 200 && res.StatusCode() < 300
}
