package app

import (
	"context"

	"github.com/orgball2608/social-feed/internal/feed"
	"github.com/orgball2608/social-feed/internal/feed/feedimpl"
	"github.com/orgball2608/social-feed/internal/instagram"
	"github.com/orgball2608/social-feed/internal/instagram/instagramimpl"
	"github.com/orgball2608/social-feed/internal/linkedin"
	"github.com/orgball2608/social-feed/internal/linkedin/linkedinimpl"
	"github.com/orgball2608/social-feed/internal/reauth"
	"github.com/orgball2608/social-feed/internal/repositories/credential"
	"github.com/orgball2608/social-feed/internal/scheduler"
	"github.com/orgball2608/social-feed/internal/scheduler/schedulerimpl"
	"github.com/orgball2608/social-feed/internal/server"
	"github.com/orgball2608/social-feed/internal/telegram"
	"github.com/orgball2608/social-feed/internal/telegram/telegramimpl"
	"github.com/orgball2608/social-feed/internal/token"
	"github.com/orgball2608/social-feed/internal/token/tokenimpl"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	credential.Module,
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			tokenimpl.New,
			fx.As(new(token.Refresher)),
		),
		reauth.New,
		fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		),
		fx.Annotate(
			linkedinimpl.New,
			fx.As(new(linkedin.Client)),
		),
		fx.Annotate(
			feedimpl.New,
			fx.As(new(feed.Client)),
		),
		fx.Annotate(
			schedulerimpl.New,
			fx.As(new(scheduler.Client)),
		),
		server.New,
	),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, srv *server.Server, sched scheduler.Client) {
	jobsCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := sched.ScheduleFeedWarmup(jobsCtx); err != nil {
				return err
			}
			if err := sched.ScheduleCredentialCheck(jobsCtx); err != nil {
				return err
			}
			sched.Start()

			srv.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			if err := sched.Shutdown(); err != nil {
				log.Error("Failed to shut down scheduler", "error", err)
			}
			logger.Flush()
			return srv.Stop(ctx)
		},
	})
}
