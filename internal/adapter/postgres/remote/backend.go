// Package remote is the PostgreSQL implementation of adapter.Backend.
package remote

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/howzue/internal/adapter/postgres"
	"github.com/heartmarshall/howzue/internal/adapter/postgres/entry"
	"github.com/heartmarshall/howzue/internal/adapter/postgres/usersettings"
	"github.com/heartmarshall/howzue/internal/config"
	"github.com/heartmarshall/howzue/internal/domain"
)

// Backend stores entries and settings in PostgreSQL.
type Backend struct {
	db       postgres.DB
	entries  *entry.Repo
	settings *usersettings.Repo
	close    func()
}

// New creates a Backend on an existing connection. Close is a no-op;
// the caller owns db.
func New(db postgres.DB) *Backend {
	return &Backend{
		db:       db,
		entries:  entry.New(db),
		settings: usersettings.New(db),
		close:    func() {},
	}
}

// Open connects to cfg.DSN, applies migrations when cfg.AutoMigrate is set
// and returns a Backend owning the pool.
func Open(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig) (*Backend, error) {
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, log, cfg.DSN); err != nil {
			return nil, domain.StorageError("remote.Open", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, domain.StorageError("remote.Open", err)
	}

	b := New(pool)
	b.close = pool.Close
	return b, nil
}

// OpenPool wraps an already configured pool and takes ownership of it.
func OpenPool(pool *pgxpool.Pool) *Backend {
	b := New(pool)
	b.close = pool.Close
	return b
}

func (b *Backend) LoadEntries(ctx context.Context, id domain.Identity) ([]domain.JournalEntry, error) {
	return b.entries.List(ctx, id)
}

func (b *Backend) SaveEntry(ctx context.Context, id domain.Identity, e domain.JournalEntry) (domain.JournalEntry, error) {
	return b.entries.Upsert(ctx, id, e)
}

func (b *Backend) ReplaceAllEntries(ctx context.Context, id domain.Identity, entries []domain.JournalEntry) error {
	return b.entries.ReplaceAll(ctx, id, entries)
}

func (b *Backend) DeleteAllEntries(ctx context.Context, id domain.Identity) error {
	_, err := b.entries.DeleteAll(ctx, id)
	return err
}

func (b *Backend) LoadSettings(ctx context.Context, id domain.Identity) (domain.Settings, error) {
	return b.settings.Get(ctx, id)
}

func (b *Backend) SaveSettings(ctx context.Context, id domain.Identity, s domain.Settings) error {
	return b.settings.Upsert(ctx, id, s)
}

func (b *Backend) Ping(ctx context.Context) error {
	if err := b.db.Ping(ctx); err != nil {
		return domain.StorageError("remote.Ping", err)
	}
	return nil
}

func (b *Backend) Close() error {
	b.close()
	return nil
}
