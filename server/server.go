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

// Package server hosts the proxy's HTTP surface.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/controllers"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/middleware/logger"
)

// Server is the proxy's HTTP server.
type Server struct {
	httpServer *http.Server
}

// New creates the server with its routes registered.
func New(cfg *config.Config, proxy controllers.ProxyController, health controllers.HealthController) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", health.Health)
	mux.HandleFunc("/", proxy.Proxy)

	return &Server{
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:        requestLogging(mux),
			ReadTimeout:    time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:   time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
			IdleTimeout:    time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
			MaxHeaderBytes: cfg.MaxHeaderBytes,
		},
	}
}

// Handler exposes the routed handler for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("proxy server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestLogging attaches a correlation-scoped logger to the request
// context.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		log := slog.Default().With(
			slog.String("correlationID", correlationID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), log)))
		log.Debug("request served", slog.Duration("duration", time.Since(start)))
	})
}
