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
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/auth"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/client"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/middleware/logger"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/utils"
)

// ProxyController forwards hosting-surface requests to the upstream API.
// Authenticated routes pass through the credential-managed gateway;
// unauthenticated routes are forwarded as-is.
type ProxyController interface {
	Proxy(w http.ResponseWriter, r *http.Request)
}

type proxyController struct {
	upstream    client.UpstreamClient
	plainClient requests.HttpClient
	routes      *config.RouteTable
	baseURL     string
	loginPath   string
	redirector  *auth.LoginRedirector
}

// NewProxyController creates a new proxy controller
func NewProxyController(
	upstream client.UpstreamClient,
	plainClient requests.HttpClient,
	routes *config.RouteTable,
	upstreamCfg config.UpstreamConfig,
	redirector *auth.LoginRedirector,
) ProxyController {
	if plainClient == nil {
		plainClient = &http.Client{}
	}
	return &proxyController{
		upstream:    upstream,
		plainClient: plainClient,
		routes:      routes,
		baseURL:     strings.TrimSuffix(upstreamCfg.BaseURL, "/"),
		loginPath:   upstreamCfg.LoginPath,
		redirector:  redirector,
	}
}

func (c *proxyController) Proxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	// The proxy observes surface navigation through the requests it
	// serves; the redirect guard needs the current location.
	c.redirector.SetLocation(r.URL.Path)

	route := c.routes.Match(r.URL.Path)
	if route == nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, utils.ErrRouteNotFound.Error())
		return
	}

	req, err := c.buildUpstreamRequest(r)
	if err != nil {
		log.Error("Proxy: failed to build upstream request", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var res *requests.Result
	if route.Authenticated {
		res, err = c.upstream.Do(ctx, req)
	} else {
		res = requests.SendRequest(ctx, c.plainClient, req)
		err = res.Err()
	}

	switch {
	case errors.Is(err, utils.ErrSessionExpired), errors.Is(err, utils.ErrRenewalFailed):
		utils.WriteJSONResponse(w, http.StatusUnauthorized, utils.ErrorResponse{
			Error: err.Error(),
			Login: c.loginPath,
		})
		return
	case res == nil || res.Err() != nil:
		// Transport failure: no upstream response to propagate
		log.Error("Proxy: upstream unreachable", "error", err)
		utils.WriteErrorResponse(w, http.StatusBadGateway, "upstream unreachable")
		return
	}

	// Success or terminal upstream failure: the upstream response is
	// forwarded to the caller unchanged.
	copyResponse(w, res)
}

// buildUpstreamRequest translates the inbound request into the gateway's
// declarative form with the payload buffered, so an authenticated call
// can be replayed after credential renewal.
func (c *proxyController) buildUpstreamRequest(r *http.Request) (*requests.HttpRequest, error) {
	url := c.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req := &requests.HttpRequest{
		Name:   "upstream.proxy",
		URL:    url,
		Method: r.Method,
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(body) > 0 {
			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			req.SetRawBody(contentType, body)
		}
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		req.SetHeader("Accept", accept)
	}
	return req, nil
}

func copyResponse(w http.ResponseWriter, res *requests.Result) {
	if contentType := res.GetHeader("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(res.StatusCode())
	if _, err := w.Write(res.Body()); err != nil {
		// The client went away mid-write; nothing to recover
		return
	}
}
