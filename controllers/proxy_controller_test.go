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
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/upstream/auth"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/utils"
)

// fakeUpstream satisfies client.UpstreamClient with a canned exchange.
type fakeUpstream struct {
	do func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error)

	lastReq *requests.HttpRequest
}

func (f *fakeUpstream) Do(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
	f.lastReq = req
	return f.do(ctx, req)
}

// settle produces a Result for the given backend behavior by running the
// declarative request against a throwaway server.
func settle(t *testing.T, handler http.HandlerFunc) *requests.Result {
	t.Helper()
	server := httptest.NewServer(handler)
	defer server.Close()
	return requests.SendRequest(context.Background(), server.Client(), &requests.HttpRequest{
		Name: "test.settle",
		URL:  server.URL,
	})
}

// newProxyForTest wires a proxy over /api/ (authenticated) and /public/
// (plain) routes with /login as the sign-in location.
func newProxyForTest(t *testing.T, upstream *fakeUpstream, baseURL string) ProxyController {
	t.Helper()
	routes := &config.RouteTable{Routes: []config.Route{
		{Prefix: "/public/", Authenticated: false},
		{Prefix: "/api/", Authenticated: true},
	}}
	redirector := auth.NewLoginRedirector("/login", nil)
	return NewProxyController(upstream, nil, routes, config.UpstreamConfig{
		BaseURL:   baseURL,
		LoginPath: "/login",
	}, redirector)
}

func TestProxyController(t *testing.T) {
	t.Run("Forwards a successful authenticated response verbatim", func(t *testing.T) {
		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			return settle(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"items":[]}`))
			}), nil
		}}
		proxy := newProxyForTest(t, upstream, "https://upstream.example")

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, httptest.NewRequest(http.MethodGet, "/api/items?page=2", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())

		require.NotNil(t, upstream.lastReq)
		assert.Equal(t, "https://upstream.example/api/items?page=2", upstream.lastReq.URL)
	})

	t.Run("Answers 401 with the sign-in location when the session expires", func(t *testing.T) {
		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			return nil, utils.ErrSessionExpired
		}}
		proxy := newProxyForTest(t, upstream, "https://upstream.example")

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"login":"/login"`)
	})

	t.Run("Forwards a terminal upstream failure unchanged", func(t *testing.T) {
		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			res := settle(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"no such item"}`, http.StatusNotFound)
			})
			return res, res.HttpError()
		}}
		proxy := newProxyForTest(t, upstream, "https://upstream.example")

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, httptest.NewRequest(http.MethodGet, "/api/items/42", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no such item")
	})

	t.Run("Answers 502 when the upstream is unreachable", func(t *testing.T) {
		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			return nil, io.ErrUnexpectedEOF
		}}
		proxy := newProxyForTest(t, upstream, "https://upstream.example")

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("Answers 404 for paths outside the route table", func(t *testing.T) {
		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			t.Error("gateway must not be called for unrouted paths")
			return nil, nil
		}}
		proxy := newProxyForTest(t, upstream, "https://upstream.example")

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, httptest.NewRequest(http.MethodGet, "/outside", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Sends unauthenticated routes through the plain client", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.Equal(t, "/public/ping", r.URL.Path)
			_, _ = w.Write([]byte("pong"))
		}))
		defer backend.Close()

		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			t.Error("gateway must not be called for unauthenticated routes")
			return nil, nil
		}}
		proxy := newProxyForTest(t, upstream, backend.URL)

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, httptest.NewRequest(http.MethodGet, "/public/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Buffers the inbound body into a replayable request", func(t *testing.T) {
		upstream := &fakeUpstream{do: func(ctx context.Context, req *requests.HttpRequest) (*requests.Result, error) {
			return settle(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			}), nil
		}}
		proxy := newProxyForTest(t, upstream, "https://upstream.example")

		body := strings.NewReader(`{"name":"new item"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/items", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		proxy.Proxy(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, upstream.lastReq)
		assert.Equal(t, http.MethodPost, upstream.lastReq.Method)
		assert.Equal(t, "application/json", upstream.lastReq.Header("Content-Type"))
	})
}
