package feed

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(platform domain.Platform, ts time.Time) domain.Post {
	id := fmt.Sprintf("%s-%s", platform, ts.Format(time.RFC3339))
	return domain.Post{
		ID:        id,
		Platform:  platform,
		ImageURL:  "https://media.example/" + id,
		Permalink: "https://example.com/" + id,
		Timestamp: ts,
	}
}

func day(d int, hour int) time.Time {
	return time.Date(2024, 5, d, hour, 0, 0, 0, time.UTC)
}

func TestMerge_Scenario(t *testing.T) {
	instagram := []domain.Post{
		post(domain.PlatformInstagram, day(1, 10)),
		post(domain.PlatformInstagram, day(3, 10)),
	}
	linkedin := []domain.Post{
		post(domain.PlatformLinkedIn, day(1, 12)),
		post(domain.PlatformLinkedIn, day(2, 12)),
		post(domain.PlatformLinkedIn, day(4, 12)),
	}

	got := Merge(instagram, linkedin, DefaultLimit)

	require.Len(t, got, 4)
	assert.Equal(t, []domain.Post{linkedin[2], instagram[1], linkedin[1], instagram[0]}, got)
}

func TestMerge_Limit(t *testing.T) {
	var instagram, linkedin []domain.Post
	for d := 1; d <= 6; d++ {
		instagram = append(instagram, post(domain.PlatformInstagram, day(d, 8)))
		linkedin = append(linkedin, post(domain.PlatformLinkedIn, day(d+10, 8)))
	}

	for _, tc := range []struct {
		limit int
		want  int
	}{
		{limit: -1, want: 0},
		{limit: 0, want: 0},
		{limit: 1, want: 1},
		{limit: 8, want: 8},
		{limit: 12, want: 12},
		{limit: 50, want: 12},
	} {
		t.Run(fmt.Sprint(tc.limit), func(t *testing.T) {
			got := Merge(instagram, linkedin, tc.limit)
			assert.NotNil(t, got)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	got := Merge(nil, nil, DefaultLimit)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	only := []domain.Post{post(domain.PlatformLinkedIn, day(2, 9))}
	assert.Equal(t, only, Merge(nil, only, DefaultLimit))
}

func TestMerge_SameDayUsesUTC(t *testing.T) {
	// 23:30 on May 1st in UTC-5 is May 2nd in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	instagram := []domain.Post{post(domain.PlatformInstagram, time.Date(2024, 5, 1, 23, 30, 0, 0, loc))}
	linkedin := []domain.Post{
		post(domain.PlatformLinkedIn, day(1, 9)),
		post(domain.PlatformLinkedIn, day(2, 9)),
	}

	got := Merge(instagram, linkedin, DefaultLimit)

	require.Len(t, got, 2)
	assert.Equal(t, instagram[0], got[0])
	assert.Equal(t, linkedin[0], got[1])
}

func TestMerge_StableForEqualTimestamps(t *testing.T) {
	first := post(domain.PlatformInstagram, day(7, 9))
	second := post(domain.PlatformInstagram, day(7, 9))
	second.ID = "second"

	got := Merge([]domain.Post{first, second}, nil, DefaultLimit)

	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	instagram := []domain.Post{post(domain.PlatformInstagram, day(1, 1)), post(domain.PlatformInstagram, day(3, 1))}
	linkedin := []domain.Post{post(domain.PlatformLinkedIn, day(1, 2)), post(domain.PlatformLinkedIn, day(2, 2))}
	igCopy := append([]domain.Post(nil), instagram...)
	liCopy := append([]domain.Post(nil), linkedin...)

	_ = Merge(instagram, linkedin, 1)

	assert.Equal(t, igCopy, instagram)
	assert.Equal(t, liCopy, linkedin)
}

func TestMerge_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randomPosts := func(platform domain.Platform) []domain.Post {
		n := rng.Intn(10)
		posts := make([]domain.Post, n)
		for i := range posts {
			posts[i] = post(platform, day(1+rng.Intn(20), rng.Intn(24)))
		}
		return posts
	}

	for i := 0; i < 200; i++ {
		instagram := randomPosts(domain.PlatformInstagram)
		linkedin := randomPosts(domain.PlatformLinkedIn)
		limit := rng.Intn(12)

		got := Merge(instagram, linkedin, limit)

		igDays := map[string]bool{}
		for _, p := range instagram {
			igDays[dayKey(p)] = true
		}
		eligible := len(instagram)
		for _, p := range linkedin {
			if !igDays[dayKey(p)] {
				eligible++
			}
		}

		require.Len(t, got, min(limit, eligible), "limit respected")
		for j := 1; j < len(got); j++ {
			require.False(t, got[j].Timestamp.After(got[j-1].Timestamp), "non-increasing timestamps")
		}
		for _, p := range got {
			if p.Platform == domain.PlatformLinkedIn {
				require.False(t, igDays[dayKey(p)], "linkedin post on an instagram day")
			}
		}
		require.Equal(t, got, Merge(instagram, linkedin, limit), "deterministic")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	instagram := []domain.Post{post(domain.PlatformInstagram, day(1, 1)), post(domain.PlatformInstagram, day(5, 1))}
	linkedin := []domain.Post{post(domain.PlatformLinkedIn, day(2, 1)), post(domain.PlatformLinkedIn, day(4, 1))}

	first := Merge(instagram, linkedin, DefaultLimit)
	second := Merge(instagram, linkedin, DefaultLimit)
	assert.Equal(t, first, second)
}
