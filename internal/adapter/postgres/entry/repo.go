// Package entry stores journal entries in PostgreSQL, one row per entry.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/howzue/internal/adapter/postgres"
	"github.com/heartmarshall/howzue/internal/domain"
)

const (
	table = "journal_entries"

	// insertChunk bounds the rows of one multi-row INSERT during ReplaceAll.
	insertChunk = 500
)

var (
	psql    = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns = []string{"id", "created_at", "mood", "text"}
)

type row struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Mood      string    `db:"mood"`
	Text      string    `db:"text"`
}

func (r row) toDomain() domain.JournalEntry {
	return domain.JournalEntry{
		ID:   r.ID,
		Date: r.CreatedAt.UTC(),
		Mood: domain.Mood(r.Mood),
		Text: r.Text,
	}
}

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates an entry repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

// List returns all entries of id, most recent first.
func (r *Repo) List(ctx context.Context, id domain.Identity) ([]domain.JournalEntry, error) {
	query, args, err := psql.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"identity": id.String()}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("entries.List: build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "entries.List")
	}

	entries := make([]domain.JournalEntry, len(rows))
	for i, rw := range rows {
		entries[i] = rw.toDomain()
	}
	return entries, nil
}

// Upsert inserts e or replaces the row with the same id. An empty id is generated.
func (r *Repo) Upsert(ctx context.Context, id domain.Identity, e domain.JournalEntry) (domain.JournalEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query, args, err := psql.
		Insert(table).
		Columns("identity", "id", "created_at", "mood", "text").
		Values(id.String(), e.ID, e.Date.UTC(), e.Mood.String(), e.Text).
		Suffix("ON CONFLICT (identity, id) DO UPDATE SET created_at = EXCLUDED.created_at, mood = EXCLUDED.mood, text = EXCLUDED.text").
		Suffix("RETURNING id, created_at, mood, text").
		ToSql()
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("entries.Upsert: build query: %w", err)
	}

	var saved row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &saved, query, args...); err != nil {
		return domain.JournalEntry{}, postgres.MapError(err, "entries.Upsert")
	}
	return saved.toDomain(), nil
}

// ReplaceAll swaps the whole collection of id in one transaction.
func (r *Repo) ReplaceAll(ctx context.Context, id domain.Identity, entries []domain.JournalEntry) error {
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		del, args, err := psql.Delete(table).Where(squirrel.Eq{"identity": id.String()}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := q.Exec(ctx, del, args...); err != nil {
			return err
		}

		for start := 0; start < len(entries); start += insertChunk {
			end := min(start+insertChunk, len(entries))

			ins := psql.Insert(table).Columns("identity", "id", "created_at", "mood", "text")
			for _, e := range entries[start:end] {
				if e.ID == "" {
					e.ID = uuid.NewString()
				}
				ins = ins.Values(id.String(), e.ID, e.Date.UTC(), e.Mood.String(), e.Text)
			}
			sql, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("build insert: %w", err)
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
		return nil
	})
	return postgres.MapError(err, "entries.ReplaceAll")
}

// DeleteAll collects the ids of id's entries and deletes exactly those rows
// in one transaction. It returns the number of deleted rows.
func (r *Repo) DeleteAll(ctx context.Context, id domain.Identity) (int, error) {
	var deleted int

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		sel, args, err := psql.
			Select("id").
			From(table).
			Where(squirrel.Eq{"identity": id.String()}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build select: %w", err)
		}

		var ids []string
		if err := pgxscan.Select(ctx, q, &ids, sel, args...); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		del, args, err := psql.
			Delete(table).
			Where(squirrel.Eq{"identity": id.String(), "id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}

		tag, err := q.Exec(ctx, del, args...)
		if err != nil {
			return err
		}
		deleted = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, postgres.MapError(err, "entries.DeleteAll")
	}
	return deleted, nil
}
