package instagramimpl

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CapsAndSorts(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var items []mediaItem
	for i := 0; i < 12; i++ {
		items = append(items, mediaItem{
			ID:        fmt.Sprint(i),
			MediaURL:  fmt.Sprintf("https://cdn/%d.jpg", i),
			MediaType: mediaTypeImage,
			Timestamp: base.Add(time.Duration(i) * time.Hour).Format(graphTimeLayout),
		})
	}

	posts := normalize(items, 8)

	require.Len(t, posts, 8)
	assert.Equal(t, "11", posts[0].ID)
	assert.Equal(t, "4", posts[7].ID)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].Timestamp.After(posts[i-1].Timestamp))
	}
}

func TestToPost(t *testing.T) {
	for _, tc := range []struct {
		desc string
		item mediaItem
		ok   bool
	}{
		{
			desc: "image",
			item: mediaItem{ID: "1", MediaURL: "u", MediaType: "IMAGE", Timestamp: "2024-05-01T10:00:00+0000"},
			ok:   true,
		},
		{
			desc: "album with RFC 3339 timestamp",
			item: mediaItem{ID: "1", MediaURL: "u", MediaType: "CAROUSEL_ALBUM", Timestamp: "2024-05-01T10:00:00Z"},
			ok:   true,
		},
		{
			desc: "video",
			item: mediaItem{ID: "1", MediaURL: "u", MediaType: "VIDEO", Timestamp: "2024-05-01T10:00:00+0000"},
		},
		{
			desc: "missing media url",
			item: mediaItem{ID: "1", MediaType: "IMAGE", Timestamp: "2024-05-01T10:00:00+0000"},
		},
		{
			desc: "bad timestamp",
			item: mediaItem{ID: "1", MediaURL: "u", MediaType: "IMAGE", Timestamp: "yesterday"},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, ok := toPost(tc.item)
			assert.Equal(t, tc.ok, ok)
		})
	}
}
