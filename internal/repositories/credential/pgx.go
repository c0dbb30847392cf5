package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/internal/repositories"
	"github.com/orgball2608/social-feed/pkg/logger"
)

const apiSettingsTable = "api_settings"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
	now    func() time.Time
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("CredentialPgxRepo"),
		now:    time.Now,
	}
}

var _ Repository = (*Pgx)(nil)

// Get returns the stored credential pair
func (p *Pgx) Get(ctx context.Context) (*domain.CredentialPair, error) {
	query, args, err := selectQuery()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var pair domain.CredentialPair
	err = p.pg.QueryRow(ctx, query, args...).Scan(&pair.AccessToken, &pair.RefreshToken, &pair.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}

	return &pair, nil
}

// Save upserts the credential pair
func (p *Pgx) Save(ctx context.Context, pair domain.CredentialPair) error {
	query, args, err := upsertQuery(pair, p.now())
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	p.logger.Info("Stored refreshed credentials", "expires_at", pair.ExpiresAt)
	return nil
}

func selectQuery() (string, []interface{}, error) {
	return repositories.SqBuilder.
		Select("linkedin_access_token", "linkedin_refresh_token", "linkedin_expires_at").
		From(apiSettingsTable).
		Where(sq.Eq{"id": SettingsID}).
		ToSql()
}

func upsertQuery(pair domain.CredentialPair, now time.Time) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Insert(apiSettingsTable).
		Columns("id", "linkedin_access_token", "linkedin_refresh_token", "linkedin_expires_at", "updated_at").
		Values(SettingsID, pair.AccessToken, pair.RefreshToken, pair.ExpiresAt, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			linkedin_access_token = EXCLUDED.linkedin_access_token,
			linkedin_refresh_token = EXCLUDED.linkedin_refresh_token,
			linkedin_expires_at = EXCLUDED.linkedin_expires_at,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
}
