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
	"net/http"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
)

// Classification names the outcome of a failed upstream attempt. Only
// ClassAuthExpired is recoverable (once, via credential renewal); every
// other classification is a side-observation for logging, and the
// original failure is propagated to the caller unchanged.
type Classification string

const (
	ClassAuthExpired  Classification = "AuthExpired"
	ClassForbidden    Classification = "Forbidden"
	ClassNotFound     Classification = "NotFound"
	ClassValidation   Classification = "Validation"
	ClassRateLimited  Classification = "RateLimited"
	ClassServerError  Classification = "ServerError"
	ClassNetworkError Classification = "NetworkError"
	ClassOther        Classification = "Other"
)

// Recoverable reports whether the classification permits a credential
// renewal retry.
func (c Classification) Recoverable() bool {
	return c == ClassAuthExpired
}

// Classify maps a settled attempt to exactly one classification.
// A 401 yields ClassAuthExpired only on a record's first attempt; a 401
// on a replayed request is terminal and falls through to ClassOther so
// it can never queue a second renewal.
func Classify(res *requests.Result, retried bool) Classification {
	if res.Err() != nil {
		return ClassNetworkError
	}

	code := res.StatusCode()
	switch {
	case code == http.StatusUnauthorized && !retried:
		return ClassAuthExpired
	case code == http.StatusForbidden:
		return ClassForbidden
	case code == http.StatusNotFound:
		return ClassNotFound
	case code == http.StatusUnprocessableEntity:
		return ClassValidation
	case code == http.StatusTooManyRequests:
		return ClassRateLimited
	case code >= 500 && code <= 599:
		return ClassServerError
	default:
		return ClassOther
	}
}
