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

package requests

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpRequest(t *testing.T) {
	t.Run("Carries the same body on every build", func(t *testing.T) {
		var bodies []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(body))
		}))
		defer server.Close()

		req := &HttpRequest{Name: "test.replay", URL: server.URL, Method: http.MethodPost}
		req.SetJSONBody(map[string]string{"key": "value"})

		ctx := context.Background()
		require.NoError(t, SendRequest(ctx, server.Client(), req).Err())
		require.NoError(t, SendRequest(ctx, server.Client(), req).Err())

		require.Len(t, bodies, 2)
		assert.JSONEq(t, `{"key":"value"}`, bodies[0])
		assert.Equal(t, bodies[0], bodies[1])
	})

	t.Run("Keeps a stable request ID across rebuilds", func(t *testing.T) {
		var ids []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ids = append(ids, r.Header.Get("X-Request-ID"))
		}))
		defer server.Close()

		req := &HttpRequest{Name: "test.id", URL: server.URL}
		ctx := context.Background()
		require.NoError(t, SendRequest(ctx, server.Client(), req).Err())
		require.NoError(t, SendRequest(ctx, server.Client(), req).Err())

		require.Len(t, ids, 2)
		assert.NotEmpty(t, ids[0])
		assert.Equal(t, ids[0], ids[1])
	})

	t.Run("SetHeader replaces the previous value", func(t *testing.T) {
		req := &HttpRequest{Name: "test.header", URL: "http://example.invalid"}
		req.SetHeader("Authorization", "Bearer first")
		req.SetHeader("Authorization", "Bearer second")
		assert.Equal(t, "Bearer second", req.Header("Authorization"))
	})

	t.Run("Form bodies are encoded on build", func(t *testing.T) {
		var contentType, body string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			body = string(raw)
		}))
		defer server.Close()

		req := &HttpRequest{Name: "test.form", URL: server.URL, Method: http.MethodPost}
		req.SetFormData(map[string]string{"grant": "renewal"})
		require.NoError(t, SendRequest(context.Background(), server.Client(), req).Err())

		assert.Equal(t, "application/x-www-form-urlencoded", contentType)
		assert.Equal(t, "grant=renewal", body)
	})

	t.Run("Rejects requests without a URL", func(t *testing.T) {
		res := SendRequest(context.Background(), &http.Client{}, &HttpRequest{Name: "test.nourl"})
		assert.Error(t, res.Err())
	})
}

func TestResult(t *testing.T) {
	t.Run("Buffers the response body before returning", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer server.Close()

		res := SendRequest(context.Background(), server.Client(), &HttpRequest{
			Name: "test.buffer", URL: server.URL,
		})
		require.NoError(t, res.Err())
		assert.Equal(t, http.StatusOK, res.StatusCode())
		assert.JSONEq(t, `{"status":"ok"}`, string(res.Body()))
	})

	t.Run("HttpError preserves status and body verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"stale credential"}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		res := SendRequest(context.Background(), server.Client(), &HttpRequest{
			Name: "test.error", URL: server.URL,
		})
		require.NoError(t, res.Err())

		var httpErr *HttpError
		require.ErrorAs(t, res.HttpError(), &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.Contains(t, httpErr.Body, "stale credential")
	})

	t.Run("ScanResponse decodes only on the expected status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"name":"renewed"}`))
		}))
		defer server.Close()

		res := SendRequest(context.Background(), server.Client(), &HttpRequest{
			Name: "test.scan", URL: server.URL,
		})

		var decoded struct {
			Name string `json:"name"`
		}
		require.NoError(t, res.ScanResponse(&decoded, http.StatusCreated))
		assert.Equal(t, "renewed", decoded.Name)

		err := res.ScanResponse(&decoded, http.StatusOK)
		var httpErr *HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusCreated, httpErr.StatusCode)
	})
}

func TestHttpErrorMessage(t *testing.T) {
	t.Run("Truncates long bodies", func(t *testing.T) {
		err := &HttpError{StatusCode: 500, Body: strings.Repeat("x", 500)}
		assert.Less(t, len(err.Error()), 300)
		assert.Contains(t, err.Error(), "...")
	})

	t.Run("Omits the body when empty", func(t *testing.T) {
		err := &HttpError{StatusCode: 404}
		assert.Equal(t, "unexpected status code 404", err.Error())
	})
}
