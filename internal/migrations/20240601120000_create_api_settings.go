package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateApiSettings, downCreateApiSettings)
}

func upCreateApiSettings(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS api_settings (
		id                     VARCHAR PRIMARY KEY,
		linkedin_access_token  VARCHAR NOT NULL DEFAULT '',
		linkedin_refresh_token VARCHAR NOT NULL DEFAULT '',
		linkedin_expires_at    TIMESTAMP WITH TIME ZONE,
		updated_at             TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateApiSettings(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS api_settings;
	`)
	if err != nil {
		return err
	}
	return nil
}
