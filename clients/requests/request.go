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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// HttpRequest is a declarative outbound request. It holds the payload in
// marshallable form rather than a consumed io.Reader, so the same request
// can be built and sent more than once (the credential-renewal replay
// depends on this).
type HttpRequest struct {
	// Name identifies the request in logs, e.g. "upstream.proxy".
	Name string
	// URL is the absolute request URL.
	URL string
	// Method is the HTTP method. Defaults to GET when empty.
	Method string

	id       uuid.UUID
	headers  map[string]string
	jsonBody any
	rawBody  []byte
	formData map[string]string
}

// ID returns the stable per-request identifier used for log correlation.
// The identifier is assigned on first use and survives rebuilds.
func (r *HttpRequest) ID() uuid.UUID {
	if r.id == uuid.Nil {
		r.id = uuid.New()
	}
	return r.id
}

// SetHeader sets a request header, replacing any previous value.
func (r *HttpRequest) SetHeader(key, value string) {
	if r.headers == nil {
		r.headers = map[string]string{}
	}
	r.headers[key] = value
}

// Header returns the currently configured value for a header, or "".
func (r *HttpRequest) Header(key string) string {
	return r.headers[key]
}

// SetJSONBody sets a payload that is marshalled to JSON on each build.
func (r *HttpRequest) SetJSONBody(body any) {
	r.jsonBody = body
	r.rawBody = nil
	r.formData = nil
}

// SetRawBody sets a verbatim payload with the given content type.
func (r *HttpRequest) SetRawBody(contentType string, body []byte) {
	r.rawBody = body
	r.jsonBody = nil
	r.formData = nil
	r.SetHeader("Content-Type", contentType)
}

// SetFormData sets an application/x-www-form-urlencoded payload.
func (r *HttpRequest) SetFormData(fields map[string]string) {
	r.formData = fields
	r.jsonBody = nil
	r.rawBody = nil
}

// buildHttpRequest materializes the declarative request into an
// *http.Request bound to ctx. Safe to call repeatedly.
func (r *HttpRequest) buildHttpRequest(ctx context.Context) (*http.Request, error) {
	if r.URL == "" {
		return nil, fmt.Errorf("request %q has no URL", r.Name)
	}
	if _, err := url.ParseRequestURI(r.URL); err != nil {
		return nil, fmt.Errorf("request %q has invalid URL: %w", r.Name, err)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body *bytes.Reader
	contentType := ""
	switch {
	case r.jsonBody != nil:
		data, err := json.Marshal(r.jsonBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body for request %q: %w", r.Name, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	case r.formData != nil:
		form := url.Values{}
		for k, v := range r.formData {
			form.Set(k, v)
		}
		body = bytes.NewReader([]byte(form.Encode()))
		contentType = "application/x-www-form-urlencoded"
	case r.rawBody != nil:
		body = bytes.NewReader(r.rawBody)
	default:
		body = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range r.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("X-Request-ID", r.ID().String())
	return httpReq, nil
}

// HttpError carries a non-success upstream response verbatim so callers
// observe the original failure unchanged.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Sprintf("unexpected status code %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, body)
}
