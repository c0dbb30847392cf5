// Package reauth runs a provider fetch and, when the provider answers 401, refreshes the
// credentials once, persists them and retries the fetch exactly once.
package reauth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/internal/repositories/credential"
	"github.com/orgball2608/social-feed/internal/telegram"
	"github.com/orgball2608/social-feed/internal/token"
	apperrors "github.com/orgball2608/social-feed/pkg/errors"
	"github.com/orgball2608/social-feed/pkg/formatter"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

const alertDetailLimit = 300

type State string

const (
	StateFetching         State = "fetching"
	StateSuccess          State = "success"
	StateUnauthorized     State = "unauthorized"
	StateOtherError       State = "other_error"
	StateRefreshingToken  State = "refreshing_token"
	StateRefreshSucceeded State = "refresh_succeeded"
	StateRefreshFailed    State = "refresh_failed"
	StateRetrying         State = "retrying"
	StateFailed           State = "failed"
)

// FetchFunc performs one provider call with the given access token. A non-2xx answer is
// reported through FetchResult.Status with a nil error; errors are transport failures.
type FetchFunc func(ctx context.Context, accessToken string) (domain.FetchResult, error)

// Outcome describes how a coordinated fetch ended. Transitions lists every state visited,
// State is the last one.
type Outcome struct {
	Result      domain.FetchResult
	Credentials domain.CredentialPair
	Attempts    int
	Refreshed   bool
	State       State
	Transitions []State
}

type Opts struct {
	fx.In

	Credentials credential.Repository
	Refresher   token.Refresher
	Telegram    telegram.Client
	Logger      logger.Logger
}

type Coordinator struct {
	credentials credential.Repository
	refresher   token.Refresher
	telegram    telegram.Client
	logger      logger.Logger
	platform    string
}

func New(opts Opts) *Coordinator {
	return &Coordinator{
		credentials: opts.Credentials,
		refresher:   opts.Refresher,
		telegram:    opts.Telegram,
		logger:      opts.Logger.WithComponent("RetryCoordinator"),
		platform:    string(domain.PlatformLinkedIn),
	}
}

// Fetch runs fetch with creds. Only a 401 triggers the refresh path, and at most one retry is
// made per call.
func (c *Coordinator) Fetch(ctx context.Context, creds domain.CredentialPair, fetch FetchFunc) (Outcome, error) {
	out := Outcome{Credentials: creds}
	c.transition(&out, StateFetching)

	result, err := c.attempt(ctx, &out, fetch)
	if err != nil {
		c.transition(&out, StateOtherError)
		return out, err
	}

	switch {
	case isSuccess(result.Status):
		c.transition(&out, StateSuccess)
		return out, nil
	case result.Status != http.StatusUnauthorized:
		c.transition(&out, StateOtherError)
		return out, apperrors.NewPlatformError(c.platform, result.Status)
	}

	c.transition(&out, StateUnauthorized)
	c.logger.Warn("Access token rejected, refreshing", "platform", c.platform)

	c.transition(&out, StateRefreshingToken)
	refreshed, err := c.Refresh(ctx, creds)
	if err != nil {
		c.transition(&out, StateRefreshFailed)
		c.transition(&out, StateFailed)
		return out, err
	}
	c.transition(&out, StateRefreshSucceeded)
	out.Refreshed = true
	out.Credentials = refreshed

	c.transition(&out, StateRetrying)
	result, err = c.attempt(ctx, &out, fetch)
	switch {
	case err != nil:
		c.transition(&out, StateOtherError)
		return out, err
	case isSuccess(result.Status):
		c.transition(&out, StateSuccess)
		return out, nil
	case result.Status == http.StatusUnauthorized:
		c.transition(&out, StateFailed)
		c.logger.Error("Access token rejected after refresh", "platform", c.platform)
		return out, apperrors.NewPlatformError(c.platform, result.Status)
	default:
		c.transition(&out, StateOtherError)
		return out, apperrors.NewPlatformError(c.platform, result.Status)
	}
}

func (c *Coordinator) transition(out *Outcome, next State) {
	c.logger.Debug("Retry state", "platform", c.platform, "from", out.State, "to", next, "attempts", out.Attempts)
	out.State = next
	out.Transitions = append(out.Transitions, next)
}

// Refresh exchanges the refresh token in creds and persists the new pair. A persistence
// failure is logged and the new pair is still returned.
func (c *Coordinator) Refresh(ctx context.Context, creds domain.CredentialPair) (domain.CredentialPair, error) {
	refreshed, err := c.refresher.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		c.logger.Error("Token refresh failed, manual reauthorization required",
			"platform", c.platform, "error", err)
		c.telegram.SendMessageToDefaultChannel(formatter.Alert(
			c.platform+" token refresh failed",
			"Manual reauthorization required.",
			formatter.Truncate(err.Error(), alertDetailLimit),
		))
		return domain.CredentialPair{}, fmt.Errorf("%s credentials expired and could not be refreshed: %w", c.platform, err)
	}

	if err := c.credentials.Save(ctx, refreshed); err != nil {
		if apperrors.IsReadOnly(err) {
			c.logger.Warn("Credential store is read-only, refreshed token kept in memory only",
				"platform", c.platform)
		} else {
			c.logger.Error("Failed to persist refreshed credentials", "platform", c.platform, "error", err)
		}
	}

	return refreshed, nil
}

func (c *Coordinator) attempt(ctx context.Context, out *Outcome, fetch FetchFunc) (domain.FetchResult, error) {
	out.Attempts++
	result, err := fetch(ctx, out.Credentials.AccessToken)
	out.Result = result
	return result, err
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
