package instagram

import (
	"context"

	"github.com/orgball2608/social-feed/internal/domain"
)

const (
	// RequestLimit is how many media items are asked for per fetch.
	RequestLimit = 12
	// MaxPosts caps the posts returned per fetch.
	MaxPosts = 8

	NotConfiguredMessage = "Instagram API not configured. Using placeholder images."
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	// GetRecentPosts returns the newest image posts. A missing token yields an empty result
	// with a message; a provider error yields an empty result and a PlatformError.
	GetRecentPosts(ctx context.Context) (domain.FetchResult, error)
}
