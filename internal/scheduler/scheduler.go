package scheduler

import "context"

type Client interface {
	// ScheduleFeedWarmup rebuilds the cached feed on the configured cron.
	ScheduleFeedWarmup(ctx context.Context) error

	// ScheduleCredentialCheck runs CheckCredentials on the configured cron.
	ScheduleCredentialCheck(ctx context.Context) error

	// CheckCredentials refreshes the LinkedIn token when it expires within the refresh lead.
	CheckCredentials(ctx context.Context) error

	Start()
	Shutdown() error
}
