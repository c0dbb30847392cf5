package domain

import "time"

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

// Post is the platform-agnostic shape every fetcher converges to.
type Post struct {
	ID        string    `json:"id"`                // Platform-scoped post ID
	Platform  Platform  `json:"platform"`          // Origin platform
	ImageURL  string    `json:"imageUrl"`          // Directly fetchable image, never a media handle
	Permalink string    `json:"permalink"`         // URL of the post on its platform
	Caption   string    `json:"caption,omitempty"` // Post text
	Timestamp time.Time `json:"timestamp"`         // Original publication time
}

// FetchResult is what a platform fetch hands back to its caller.
// Status is the HTTP status of the primary provider call, 0 when no call was made.
type FetchResult struct {
	Posts   []Post
	Status  int
	Message string
}

// Feed is the merged, ranked output of an aggregation.
type Feed struct {
	Posts   []Post              `json:"posts"`
	Sources map[Platform]int    `json:"sources"`
	Errors  map[Platform]string `json:"errors,omitempty"`
}
