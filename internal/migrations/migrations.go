package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

// Up applies every registered Go migration.
func Up(ctx context.Context, db *sql.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
