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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
)

// resultWithStatus settles a real request against a throwaway server so
// the classifier sees the same Result shape production code does.
func resultWithStatus(t *testing.T, status int) *requests.Result {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()
	return requests.SendRequest(context.Background(), server.Client(), &requests.HttpRequest{
		Name: "test.classify",
		URL:  server.URL,
	})
}

func failedResult(t *testing.T) *requests.Result {
	t.Helper()
	return requests.SendRequest(context.Background(), &http.Client{}, &requests.HttpRequest{
		Name: "test.classify",
		URL:  "http://127.0.0.1:1/unreachable",
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		status   int
		retried  bool
		expected Classification
	}{
		{http.StatusUnauthorized, false, ClassAuthExpired},
		{http.StatusUnauthorized, true, ClassOther},
		{http.StatusForbidden, false, ClassForbidden},
		{http.StatusNotFound, false, ClassNotFound},
		{http.StatusUnprocessableEntity, false, ClassValidation},
		{http.StatusTooManyRequests, false, ClassRateLimited},
		{http.StatusInternalServerError, false, ClassServerError},
		{http.StatusBadGateway, false, ClassServerError},
		{599, false, ClassServerError},
		{http.StatusBadRequest, false, ClassOther},
		{http.StatusConflict, false, ClassOther},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("status %d retried=%t is %s", tc.status, tc.retried, tc.expected)
		t.Run(name, func(t *testing.T) {
			res := resultWithStatus(t, tc.status)
			assert.Equal(t, tc.expected, Classify(res, tc.retried))
		})
	}

	t.Run("transport failure is NetworkError regardless of retry state", func(t *testing.T) {
		res := failedResult(t)
		assert.Equal(t, ClassNetworkError, Classify(res, false))
		assert.Equal(t, ClassNetworkError, Classify(res, true))
	})

	t.Run("only AuthExpired is recoverable", func(t *testing.T) {
		assert.True(t, ClassAuthExpired.Recoverable())
		for _, cls := range []Classification{
			ClassForbidden, ClassNotFound, ClassValidation, ClassRateLimited,
			ClassServerError, ClassNetworkError, ClassOther,
		} {
			assert.False(t, cls.Recoverable(), string(cls))
		}
	})
}
