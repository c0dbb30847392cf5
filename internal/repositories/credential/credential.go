package credential

import (
	"context"
	"errors"

	"github.com/orgball2608/social-feed/internal/domain"
)

// SettingsID keys the single persisted settings record.
const SettingsID = "apiSettings"

var ErrNotFound = errors.New("credentials not found")

//go:generate go run go.uber.org/mock/mockgen -source=credential.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the current LinkedIn credential pair
	Get(ctx context.Context) (*domain.CredentialPair, error)

	// Save replaces the stored LinkedIn credential pair
	Save(ctx context.Context, pair domain.CredentialPair) error
}
