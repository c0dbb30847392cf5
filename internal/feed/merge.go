package feed

import (
	"slices"

	"github.com/orgball2608/social-feed/internal/domain"
)

// DefaultLimit is the size of the public feed.
const DefaultLimit = 8

// Merge combines both platform lists into one feed. A LinkedIn post is dropped when an
// Instagram post exists for the same UTC calendar day. The result is ordered newest first,
// ties keep Instagram ahead of LinkedIn, and at most limit posts are returned.
// The inputs are not modified.
func Merge(instagram, linkedin []domain.Post, limit int) []domain.Post {
	if limit <= 0 {
		return []domain.Post{}
	}

	covered := make(map[string]struct{}, len(instagram))
	for _, p := range instagram {
		covered[dayKey(p)] = struct{}{}
	}

	merged := make([]domain.Post, 0, len(instagram)+len(linkedin))
	merged = append(merged, instagram...)
	for _, p := range linkedin {
		if _, ok := covered[dayKey(p)]; ok {
			continue
		}
		merged = append(merged, p)
	}

	slices.SortStableFunc(merged, func(a, b domain.Post) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func dayKey(p domain.Post) string {
	return p.Timestamp.UTC().Format("2006-01-02")
}
