// Package usersettings stores one settings row per identity in PostgreSQL.
package usersettings

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/howzue/internal/adapter/postgres"
	"github.com/heartmarshall/howzue/internal/domain"
)

const table = "user_settings"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type row struct {
	Theme            string `db:"theme"`
	EnableAIInsights bool   `db:"enable_ai_insights"`
}

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a settings repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Get returns the settings of id, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id domain.Identity) (domain.Settings, error) {
	query, args, err := psql.
		Select("theme", "enable_ai_insights").
		From(table).
		Where(squirrel.Eq{"identity": id.String()}).
		ToSql()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("settings.Get: build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return domain.Settings{}, postgres.MapError(err, "settings.Get")
	}

	return domain.Settings{
		Theme:            domain.Theme(rw.Theme),
		EnableAIInsights: rw.EnableAIInsights,
	}, nil
}

// Upsert writes s as the settings of id.
func (r *Repo) Upsert(ctx context.Context, id domain.Identity, s domain.Settings) error {
	query, args, err := psql.
		Insert(table).
		Columns("identity", "theme", "enable_ai_insights", "updated_at").
		Values(id.String(), s.Theme.String(), s.EnableAIInsights, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (identity) DO UPDATE SET theme = EXCLUDED.theme, enable_ai_insights = EXCLUDED.enable_ai_insights, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("settings.Upsert: build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "settings.Upsert")
	}
	return nil
}
