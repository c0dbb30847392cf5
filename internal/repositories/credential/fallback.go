package credential

import (
	"context"
	"errors"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/pkg/logger"
)

// Fallback reads from a durable store and falls back to static credentials when the store
// holds nothing usable. Writes always go to the durable store.
type Fallback struct {
	store  Repository
	static Repository
	logger logger.Logger
}

func NewFallback(store, static Repository, log logger.Logger) *Fallback {
	return &Fallback{
		store:  store,
		static: static,
		logger: log.WithComponent("CredentialFallback"),
	}
}

var _ Repository = (*Fallback)(nil)

func (f *Fallback) Get(ctx context.Context) (*domain.CredentialPair, error) {
	pair, err := f.store.Get(ctx)
	switch {
	case err == nil && pair.AccessToken != "":
		return pair, nil
	case err == nil, errors.Is(err, ErrNotFound):
		f.logger.Debug("No stored credentials, using static configuration")
	default:
		f.logger.Error("Failed to read stored credentials, using static configuration", "error", err)
	}
	return f.static.Get(ctx)
}

func (f *Fallback) Save(ctx context.Context, pair domain.CredentialPair) error {
	return f.store.Save(ctx, pair)
}
