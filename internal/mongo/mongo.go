package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"github.com/orgball2608/social-feed/pkg/retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const SettingsCollection = "settings"

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New connects a client and returns the database named by MONGO_DATABASE.
// mongo.Connect does not dial; the connection is verified on start.
func New(opts Opts) (*mongo.Database, error) {
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI(opts.Config.Mongo.URI).
		SetConnectTimeout(15*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				err := retry.Do(ctx, opts.Logger, "MongoPing", func() error {
					return client.Ping(ctx, nil)
				}, retry.DefaultConfig())
				if err != nil {
					return fmt.Errorf("failed to ping mongo: %w", err)
				}
				opts.Logger.Info("Connected to mongo", "database", opts.Config.Mongo.Database)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return client.Disconnect(ctx)
			},
		},
	)

	return client.Database(opts.Config.Mongo.Database), nil
}
