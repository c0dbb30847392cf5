package feedimpl

import (
	"context"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/internal/feed"
	"github.com/orgball2608/social-feed/internal/instagram"
	"github.com/orgball2608/social-feed/internal/linkedin"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"github.com/viccon/sturdyc"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	cacheKey = "social-feed"

	cacheCapacity   = 16
	cacheShards     = 1
	cacheEvictRatio = 10
)

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Instagram instagram.Client
	LinkedIn  linkedin.Client
}

type FeedImpl struct {
	instagram instagram.Client
	linkedin  linkedin.Client
	cache     *sturdyc.Client[domain.Feed]
	limit     int
	timeout   time.Duration
	logger    logger.Logger
}

func New(opts Opts) *FeedImpl {
	limit := opts.Config.Feed.Limit
	if limit <= 0 {
		limit = feed.DefaultLimit
	}

	return &FeedImpl{
		instagram: opts.Instagram,
		linkedin:  opts.LinkedIn,
		cache:     sturdyc.New[domain.Feed](cacheCapacity, cacheShards, opts.Config.Feed.CacheTTL, cacheEvictRatio),
		limit:     limit,
		timeout:   opts.Config.Feed.FetchTimeout,
		logger:    opts.Logger.WithComponent("Feed"),
	}
}

var _ feed.Client = (*FeedImpl)(nil)

func (f *FeedImpl) Aggregate(ctx context.Context) (domain.Feed, error) {
	if cached, ok := f.cache.Get(cacheKey); ok {
		return cached, nil
	}
	return f.Rebuild(ctx)
}

// Rebuild fetches both platforms concurrently. A failing platform contributes no posts and an
// entry in Errors. Only feeds without errors are cached.
func (f *FeedImpl) Rebuild(ctx context.Context) (domain.Feed, error) {
	var (
		g        errgroup.Group
		igResult domain.FetchResult
		liResult domain.FetchResult
		igErr    error
		liErr    error
	)

	// Branch errors are kept per platform and the closures return nil, so one platform
	// failing never cancels the other or hides its error behind the group's first.
	g.Go(func() error {
		igResult, igErr = f.fetch(ctx, f.instagram.GetRecentPosts)
		return nil
	})
	g.Go(func() error {
		liResult, liErr = f.fetch(ctx, f.linkedin.GetOrganizationPosts)
		return nil
	})
	_ = g.Wait()

	out := domain.Feed{
		Sources: map[domain.Platform]int{
			domain.PlatformInstagram: 0,
			domain.PlatformLinkedIn:  0,
		},
	}

	var igPosts, liPosts []domain.Post
	if igErr != nil {
		f.logger.Error("Instagram branch failed", "error", igErr)
		addError(&out, domain.PlatformInstagram, igErr)
	} else {
		igPosts = igResult.Posts
	}
	if liErr != nil {
		f.logger.Error("LinkedIn branch failed", "error", liErr)
		addError(&out, domain.PlatformLinkedIn, liErr)
	} else {
		liPosts = liResult.Posts
	}

	out.Sources[domain.PlatformInstagram] = len(igPosts)
	out.Sources[domain.PlatformLinkedIn] = len(liPosts)
	out.Posts = feed.Merge(igPosts, liPosts, f.limit)

	if len(out.Errors) == 0 {
		f.cache.Set(cacheKey, out)
	}

	f.logger.Debug("Feed rebuilt",
		"instagram", len(igPosts), "linkedin", len(liPosts), "posts", len(out.Posts), "errors", len(out.Errors))
	return out, nil
}

func (f *FeedImpl) fetch(ctx context.Context, fn func(context.Context) (domain.FetchResult, error)) (domain.FetchResult, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return fn(ctx)
}

func addError(out *domain.Feed, platform domain.Platform, err error) {
	if out.Errors == nil {
		out.Errors = map[domain.Platform]string{}
	}
	out.Errors[platform] = err.Error()
}
