package linkedinimpl

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
)

const permalinkBase = "https://www.linkedin.com/feed/update/"

type postsResponse struct {
	Elements []organizationPost `json:"elements"`
}

type organizationPost struct {
	ID          string          `json:"id"`
	Author      string          `json:"author"`
	Commentary  string          `json:"commentary"`
	PublishedAt json.RawMessage `json:"publishedAt"`
	Content     *postContent    `json:"content"`
}

type postContent struct {
	Media *struct {
		ID string `json:"id"`
	} `json:"media"`
	MultiImage *struct {
		Images []struct {
			ID string `json:"id"`
		} `json:"images"`
	} `json:"multiImage"`
}

type imageResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// mediaID returns the single media id or the first image of a multi-image post.
func mediaID(post organizationPost) string {
	if post.Content == nil {
		return ""
	}
	if post.Content.Media != nil && post.Content.Media.ID != "" {
		return post.Content.Media.ID
	}
	if post.Content.MultiImage != nil && len(post.Content.MultiImage.Images) > 0 {
		return post.Content.MultiImage.Images[0].ID
	}
	return ""
}

func toPost(post organizationPost, downloadURL string) (domain.Post, bool) {
	if downloadURL == "" || post.ID == "" {
		return domain.Post{}, false
	}

	ts, ok := parsePublishedAt(post.PublishedAt)
	if !ok {
		return domain.Post{}, false
	}

	return domain.Post{
		ID:        post.ID,
		Platform:  domain.PlatformLinkedIn,
		ImageURL:  downloadURL,
		Permalink: permalinkBase + post.ID,
		Caption:   post.Commentary,
		Timestamp: ts,
	}, true
}

// parsePublishedAt accepts epoch milliseconds, either as a JSON number or a numeric string,
// and RFC 3339 strings.
func parsePublishedAt(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}

	var value string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &value); err != nil {
			return time.Time{}, false
		}
	} else {
		value = string(raw)
	}
	value = strings.TrimSpace(value)

	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if ms <= 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
