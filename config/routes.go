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

package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"
)

// Route maps a local path prefix to the upstream. Authenticated routes
// go through the credential-managed gateway; the rest are forwarded
// as-is.
type Route struct {
	// Prefix is the local path prefix, e.g. "/api/"
	Prefix string `json:"prefix"`
	// Authenticated marks the route as requiring a bearer credential
	Authenticated bool `json:"authenticated"`
}

// RouteTable is the proxy's ordered route configuration. Longest prefix
// wins.
type RouteTable struct {
	Routes []Route `json:"routes"`
}

// LoadRouteTable reads and validates the YAML route table at path. When
// the file does not exist a single authenticated catch-all route is
// returned.
func LoadRouteTable(path string) (*RouteTable, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RouteTable{Routes: []Route{{Prefix: "/", Authenticated: true}}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read route table %s: %w", path, err)
	}

	var table RouteTable
	if err := yaml.UnmarshalStrict(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse route table %s: %w", path, err)
	}
	if len(table.Routes) == 0 {
		return nil, fmt.Errorf("route table %s contains no routes", path)
	}
	for i, route := range table.Routes {
		if !strings.HasPrefix(route.Prefix, "/") {
			return nil, fmt.Errorf("route %d: prefix %q must start with /", i, route.Prefix)
		}
	}

	// Longest prefix first so Match can return the first hit
	sort.SliceStable(table.Routes, func(i, j int) bool {
		return len(table.Routes[i].Prefix) > len(table.Routes[j].Prefix)
	})
	return &table, nil
}

// Match returns the route for the given request path, or nil when no
// prefix matches.
func (t *RouteTable) Match(path string) *Route {
	for i := range t.Routes {
		if strings.HasPrefix(path, t.Routes[i].Prefix) {
			return &t.Routes[i]
		}
	}
	return nil
}
