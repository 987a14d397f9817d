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

import "github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"

// authorizationHeader is the header the upstream expects the bearer
// credential on.
const authorizationHeader = "Authorization"

// stampBearer attaches the access credential to an outbound request.
// With an empty credential the request is forwarded unauthenticated and
// the upstream's 401 drives the renewal path. Mutates only the request
// headers; never blocks.
func stampBearer(req *requests.HttpRequest, token string) {
	if token == "" {
		return
	}
	req.SetHeader(authorizationHeader, "Bearer "+token)
}
