package schedulerimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/social-feed/internal/feed"
	"github.com/orgball2608/social-feed/internal/linkedin"
	"github.com/orgball2608/social-feed/internal/repositories/credential"
	"github.com/orgball2608/social-feed/internal/scheduler"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

const (
	warmupTimeout = 2 * time.Minute
	checkTimeout  = time.Minute
)

type Opts struct {
	fx.In

	Config      *config.Config
	Logger      logger.Logger
	Feed        feed.Client
	LinkedIn    linkedin.Client
	Credentials credential.Repository
}

type SchedulerImpl struct {
	Scheduler   gocron.Scheduler
	Feed        feed.Client
	LinkedIn    linkedin.Client
	Credentials credential.Repository
	Logger      logger.Logger
	Config      *config.Config
	now         func() time.Time
}

func New(opts Opts) (*SchedulerImpl, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &SchedulerImpl{
		Scheduler:   s,
		Feed:        opts.Feed,
		LinkedIn:    opts.LinkedIn,
		Credentials: opts.Credentials,
		Logger:      opts.Logger.WithComponent("Scheduler"),
		Config:      opts.Config,
		now:         time.Now,
	}, nil
}

var _ scheduler.Client = (*SchedulerImpl)(nil)

func (s *SchedulerImpl) ScheduleFeedWarmup(ctx context.Context) error {
	cron := s.Config.Feed.WarmCron
	s.Logger.Info("Setting up feed warmup", "cron", cron)

	_, err := s.Scheduler.NewJob(
		gocron.CronJob(cron, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			warmCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
			defer cancel()

			result, err := s.Feed.Rebuild(warmCtx)
			if err != nil {
				s.Logger.Error("Feed warmup failed", "error", err)
				return
			}
			s.Logger.Info("Feed warmed", "posts", len(result.Posts), "errors", len(result.Errors))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule feed warmup: %w", err)
	}
	return nil
}

func (s *SchedulerImpl) ScheduleCredentialCheck(ctx context.Context) error {
	cron := s.Config.CredentialStore.CheckCron
	s.Logger.Info("Setting up credential check", "cron", cron, "lead", s.Config.CredentialStore.RefreshLead)

	_, err := s.Scheduler.NewJob(
		gocron.CronJob(cron, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			if err := s.CheckCredentials(checkCtx); err != nil {
				s.Logger.Error("Credential check failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule credential check: %w", err)
	}
	return nil
}

func (s *SchedulerImpl) CheckCredentials(ctx context.Context) error {
	pair, err := s.Credentials.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if pair.RefreshToken == "" {
		s.Logger.Debug("No refresh token configured, skipping credential check")
		return nil
	}
	if pair.ExpiresAt == nil {
		s.Logger.Debug("Credential expiry unknown, skipping proactive refresh")
		return nil
	}

	now := s.now()
	if !pair.ExpiresWithin(now, s.Config.CredentialStore.RefreshLead) {
		s.Logger.Debug("Credentials still fresh", "expiresIn", pair.ExpiresIn(now).String())
		return nil
	}

	s.Logger.Info("LinkedIn token close to expiry, refreshing", "expiresAt", pair.ExpiresAt)
	if _, err := s.LinkedIn.RefreshAccessToken(ctx); err != nil {
		return fmt.Errorf("proactive refresh: %w", err)
	}
	return nil
}

func (s *SchedulerImpl) Start() {
	s.Scheduler.Start()
}

func (s *SchedulerImpl) Shutdown() error {
	return s.Scheduler.Shutdown()
}
