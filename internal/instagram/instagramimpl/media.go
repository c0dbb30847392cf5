package instagramimpl

import (
	"sort"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
)

const (
	mediaTypeImage    = "IMAGE"
	mediaTypeCarousel = "CAROUSEL_ALBUM"

	// Graph API timestamps carry a numeric offset without a colon.
	graphTimeLayout = "2006-01-02T15:04:05-0700"
)

type mediaItem struct {
	ID        string `json:"id"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	Timestamp string `json:"timestamp"`
}

// normalize keeps image and album items, orders them newest first and caps the result.
func normalize(items []mediaItem, limit int) []domain.Post {
	posts := make([]domain.Post, 0, len(items))
	for _, item := range items {
		if post, ok := toPost(item); ok {
			posts = append(posts, post)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

func toPost(item mediaItem) (domain.Post, bool) {
	if item.MediaType != mediaTypeImage && item.MediaType != mediaTypeCarousel {
		return domain.Post{}, false
	}
	if item.ID == "" || item.MediaURL == "" {
		return domain.Post{}, false
	}

	ts, err := parseTimestamp(item.Timestamp)
	if err != nil {
		return domain.Post{}, false
	}

	return domain.Post{
		ID:        item.ID,
		Platform:  domain.PlatformInstagram,
		ImageURL:  item.MediaURL,
		Permalink: item.Permalink,
		Caption:   item.Caption,
		Timestamp: ts,
	}, true
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(graphTimeLayout, value)
	if err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
