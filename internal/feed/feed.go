package feed

import (
	"context"

	"github.com/orgball2608/social-feed/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=feed.go -destination=mocks/mock.go
type Client interface {
	// Aggregate returns the merged feed, served from cache while it is fresh.
	Aggregate(ctx context.Context) (domain.Feed, error)

	// Rebuild fetches both platforms again and refreshes the cache.
	Rebuild(ctx context.Context) (domain.Feed, error)
}
