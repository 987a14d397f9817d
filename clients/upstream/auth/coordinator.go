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

// Package auth owns credential renewal for the upstream gateway: the
// single-flight coordination that ensures one renewal call per expiry
// burst, and the session-termination signal raised when renewal is not
// possible.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/credentials"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/middleware/logger"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/models"
	"github.com/wso2/ai-agent-management-platform/api-proxy-service/utils"
)

// DefaultRenewalTimeout bounds the renewal network call. Renewal is not
// cancellable by any single caller, so it carries its own deadline.
const DefaultRenewalTimeout = 15 * time.Second

// renewalKey is the single singleflight key: one credential pair, one
// renewal in flight at a time.
const renewalKey = "renew"

// Config contains configuration for the refresh coordinator
type Config struct {
	// RenewalURL is the absolute URL of the upstream renewal endpoint
	RenewalURL string

	// RenewalTimeout bounds the renewal call. Defaults to
	// DefaultRenewalTimeout when zero.
	RenewalTimeout time.Duration
}

// Coordinator collapses concurrent credential renewals into a single
// network call. Callers that observe an expired credential while a
// renewal is already in flight block until that renewal settles and all
// receive its outcome. One Coordinator is constructed per client
// instance and injected into the request pipeline; it is the only
// component that writes to the credential store during operation.
type Coordinator struct {
	config     Config
	store      credentials.Store
	httpClient requests.HttpClient
	notifier   *SessionNotifier

	group singleflight.Group
}

// NewCoordinator creates a refresh coordinator. The notifier may be
// shared with the hosting surface so it observes session termination.
func NewCoordinator(cfg Config, store credentials.Store, httpClient requests.HttpClient, notifier *SessionNotifier) *Coordinator {
	if cfg.RenewalTimeout == 0 {
		cfg.RenewalTimeout = DefaultRenewalTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if notifier == nil {
		notifier = NewSessionNotifier()
	}
	return &Coordinator{
		config:     cfg,
		store:      store,
		httpClient: httpClient,
		notifier:   notifier,
	}
}

// Notifier returns the session-termination notifier the coordinator
// signals on unrecoverable renewal outcomes.
func (c *Coordinator) Notifier() *SessionNotifier {
	return c.notifier
}

// Renew obtains a fresh access credential. Concurrent calls share one
// renewal: exactly one network call is made per expiry burst, the store
// is updated before any waiter is released, and every waiter receives
// the same outcome. A call that arrives after a renewal has settled
// starts a fresh, independent renewal.
//
// Unrecoverable outcomes are utils.ErrSessionExpired (no refresh
// credential held) and errors wrapping utils.ErrRenewalFailed (the
// renewal call itself failed). Both clear the store and signal session
// termination exactly once before any waiter observes them.
func (c *Coordinator) Renew(ctx context.Context) (string, error) {
	token, err, shared := c.group.Do(renewalKey, func() (any, error) {
		// The renewal outcome is shared by every waiter, so it must not
		// be cancelled by whichever caller happened to start it. It
		// runs under its own deadline instead.
		renewCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.config.RenewalTimeout)
		defer cancel()
		return c.renew(renewCtx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.GetLogger(ctx).Debug("credential renewal outcome shared with waiter")
	}
	return token.(string), nil
}

// renew performs one renewal cycle. Runs at most once per singleflight
// span.
func (c *Coordinator) renew(ctx context.Context) (string, error) {
	log := logger.GetLogger(ctx)

	refresh, err := c.store.Refresh(ctx)
	if err != nil {
		// Store failure is an infrastructure error, not an auth
		// outcome: the session is left intact.
		return "", fmt.Errorf("failed to read refresh credential: %w", err)
	}
	if refresh == "" {
		log.Info("no refresh credential held, terminating session")
		return "", c.terminate(ctx, utils.ErrSessionExpired)
	}

	log.Info("renewing access credential")

	req := &requests.HttpRequest{
		Name:   "upstream.auth.renew",
		URL:    c.config.RenewalURL,
		Method: http.MethodPost,
	}
	req.SetJSONBody(models.RenewalRequest{RefreshToken: refresh})

	res := requests.SendRequest(ctx, c.httpClient, req)
	if resErr := res.Err(); resErr != nil {
		return "", c.terminate(ctx, fmt.Errorf("%w: %w", utils.ErrRenewalFailed, resErr))
	}
	if code := res.StatusCode(); code < 200 || code >= 300 {
		return "", c.terminate(ctx, fmt.Errorf("%w: %w", utils.ErrRenewalFailed, res.HttpError()))
	}

	var renewed models.RenewalResponse
	if err := json.Unmarshal(res.Body(), &renewed); err != nil {
		return "", c.terminate(ctx, fmt.Errorf("%w: failed to decode renewal response: %w", utils.ErrRenewalFailed, err))
	}
	if renewed.Tokens.AccessToken == "" {
		return "", c.terminate(ctx, fmt.Errorf("%w: empty access token in renewal response", utils.ErrRenewalFailed))
	}

	// The store must hold the new credential before any waiter is
	// released, so a waiter that re-reads the store observes it.
	if err := c.store.SetAccess(ctx, renewed.Tokens.AccessToken); err != nil {
		return "", fmt.Errorf("failed to store renewed credential: %w", err)
	}

	log.Info("access credential renewed")
	return renewed.Tokens.AccessToken, nil
}

// terminate clears the stored session and raises the termination signal,
// then returns reason for propagation to every waiter. Runs inside the
// singleflight span, so the store is cleared and the signal raised
// exactly once regardless of how many callers are waiting.
func (c *Coordinator) terminate(ctx context.Context, reason error) error {
	log := logger.GetLogger(ctx)
	if err := c.store.Clear(ctx); err != nil {
		log.Warn("failed to clear credential store", slog.String("error", err.Error()))
	}
	c.notifier.Terminate(reason)
	return reason
}
