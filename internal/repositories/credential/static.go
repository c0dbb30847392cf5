package credential

import (
	"context"
	"fmt"

	"github.com/orgball2608/social-feed/internal/domain"
	apperrors "github.com/orgball2608/social-feed/pkg/errors"
)

// Static serves the credentials configured through the environment. It cannot persist.
type Static struct {
	pair domain.CredentialPair
}

func NewStatic(accessToken, refreshToken string) *Static {
	return &Static{
		pair: domain.CredentialPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}
}

var _ Repository = (*Static)(nil)

func (s *Static) Get(_ context.Context) (*domain.CredentialPair, error) {
	pair := s.pair
	return &pair, nil
}

func (s *Static) Save(_ context.Context, _ domain.CredentialPair) error {
	return fmt.Errorf("static credentials: %w", apperrors.ErrReadOnly)
}
