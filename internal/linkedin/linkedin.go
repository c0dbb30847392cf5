package linkedin

import (
	"context"

	"github.com/orgball2608/social-feed/internal/domain"
)

const (
	// RequestLimit is how many organization posts are asked for per fetch.
	RequestLimit = 12
	// MaxPosts caps the posts returned per fetch.
	MaxPosts = 8

	NotConfiguredMessage = "LinkedIn API not configured."
)

//go:generate go run go.uber.org/mock/mockgen -source=linkedin.go -destination=mocks/mock.go
type Client interface {
	// GetOrganizationPosts returns the organization's newest image posts, refreshing the
	// access token once if the provider rejects it.
	GetOrganizationPosts(ctx context.Context) (domain.FetchResult, error)

	// RefreshAccessToken forces a token refresh and persists the new pair.
	RefreshAccessToken(ctx context.Context) (domain.CredentialPair, error)
}
