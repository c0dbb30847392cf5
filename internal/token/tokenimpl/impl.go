package tokenimpl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/internal/token"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TokenImpl struct {
	oauth  *oauth2.Config
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

func New(opts Opts) *TokenImpl {
	return &TokenImpl{
		oauth: &oauth2.Config{
			ClientID:     opts.Config.LinkedIn.ClientID,
			ClientSecret: opts.Config.LinkedIn.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  opts.Config.LinkedIn.TokenUrl,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: &http.Client{Timeout: opts.Config.HTTP.ClientTimeout},
		logger: opts.Logger.WithComponent("TokenRefresher"),
		now:    time.Now,
	}
}

var _ token.Refresher = (*TokenImpl)(nil)

// Refresh runs a refresh_token grant against the provider's token endpoint.
func (t *TokenImpl) Refresh(ctx context.Context, refreshToken string) (domain.CredentialPair, error) {
	if refreshToken == "" {
		return domain.CredentialPair{}, token.ErrNoRefreshToken
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, t.client)
	issuedAt := t.now()

	tok, err := t.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			t.logger.Error("Token endpoint rejected refresh",
				"status", retrieveErr.Response.StatusCode,
				"error_code", retrieveErr.ErrorCode,
			)
		} else {
			t.logger.Error("Token refresh request failed", "error", err)
		}
		return domain.CredentialPair{}, fmt.Errorf("%w: %v", token.ErrRefreshFailed, err)
	}

	if tok.AccessToken == "" {
		return domain.CredentialPair{}, fmt.Errorf("%w: empty access token in response", token.ErrRefreshFailed)
	}

	pair := domain.CredentialPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}

	expiresAt := issuedAt.Add(token.DefaultLifetime)
	switch {
	case tok.ExpiresIn > 0:
		expiresAt = issuedAt.Add(time.Duration(tok.ExpiresIn) * time.Second)
	case !tok.Expiry.IsZero():
		expiresAt = tok.Expiry
	}
	pair.ExpiresAt = &expiresAt

	t.logger.Info("Refreshed access token",
		"expires_at", expiresAt,
		"rotated_refresh_token", pair.RefreshToken != refreshToken,
	)
	return pair, nil
}
