// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
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

package utils

import "errors"

var (
	// Session errors. Both terminate the proxy session: stored
	// credentials are cleared and the hosting surface is routed to
	// re-authentication.

	// ErrSessionExpired is returned when no refresh credential exists,
	// so no renewal can be attempted.
	ErrSessionExpired = errors.New("session expired: sign-in required")
	// ErrRenewalFailed is returned when the credential renewal call
	// itself fails. It wraps the renewal failure, not any caller's
	// original request failure.
	ErrRenewalFailed = errors.New("credential renewal failed")

	// ErrRouteNotFound is answered for request paths outside the
	// configured route table.
	ErrRouteNotFound = errors.New("no proxy route matches the request path")
)
