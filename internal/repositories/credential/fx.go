package credential

import (
	"github.com/orgball2608/social-feed/internal/mongo"
	"github.com/orgball2608/social-feed/internal/pgx"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("credential_repository",
	fx.Provide(NewRepository),
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// NewRepository picks the durable store named by CREDENTIAL_STORE_DRIVER and wraps it with the
// static fallback. Without a usable store the static credentials are served read-only.
func NewRepository(opts Opts) (Repository, error) {
	cfg := opts.Config
	static := NewStatic(cfg.LinkedIn.AccessToken, cfg.LinkedIn.RefreshToken)

	switch cfg.CredentialStore.Driver {
	case config.CredentialStorePostgres:
		if cfg.Postgres.Host == "" {
			break
		}
		pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: cfg})
		if err != nil {
			return nil, err
		}
		return NewFallback(NewPgx(pool, opts.Logger), static, opts.Logger), nil
	case config.CredentialStoreMongo:
		if cfg.Mongo.URI == "" {
			break
		}
		db, err := mongo.New(mongo.Opts{LC: opts.LC, Logger: opts.Logger, Config: cfg})
		if err != nil {
			return nil, err
		}
		collection := db.Collection(mongo.SettingsCollection)
		return NewFallback(NewMongo(collection, opts.Logger), static, opts.Logger), nil
	}

	opts.Logger.Warn("No credential store configured, refreshed tokens will not be persisted",
		"driver", cfg.CredentialStore.Driver)
	return static, nil
}
