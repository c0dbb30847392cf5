package token

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	apperrors "github.com/orgball2608/social-feed/pkg/errors"
)

// DefaultLifetime applies when the provider omits expires_in.
const DefaultLifetime = 60 * 24 * time.Hour

var (
	ErrRefreshFailed  = apperrors.ErrRefreshFailed
	ErrNoRefreshToken = fmt.Errorf("no refresh token available: %w", ErrRefreshFailed)
)

//go:generate go run go.uber.org/mock/mockgen -source=token.go -destination=mocks/mock.go
type Refresher interface {
	// Refresh exchanges refreshToken for a new credential pair. Every failure wraps ErrRefreshFailed.
	Refresh(ctx context.Context, refreshToken string) (domain.CredentialPair, error)
}
