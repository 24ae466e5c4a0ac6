// Package adapter defines the persistence boundary shared by every storage backend.
package adapter

import (
	"context"

	"github.com/heartmarshall/howzue/internal/domain"
)

// Backend stores entries and settings per identity.
//
// Failures of the underlying store match domain.ErrStorageUnavailable.
// LoadSettings returns domain.ErrNotFound when nothing was saved yet.
// SaveEntry inserts or replaces by id and assigns an id when it is empty.
// LoadEntries returns entries ordered by date descending.
type Backend interface {
	LoadEntries(ctx context.Context, id domain.Identity) ([]domain.JournalEntry, error)
	SaveEntry(ctx context.Context, id domain.Identity, entry domain.JournalEntry) (domain.JournalEntry, error)
	ReplaceAllEntries(ctx context.Context, id domain.Identity, entries []domain.JournalEntry) error
	DeleteAllEntries(ctx context.Context, id domain.Identity) error

	LoadSettings(ctx context.Context, id domain.Identity) (domain.Settings, error)
	SaveSettings(ctx context.Context, id domain.Identity, s domain.Settings) error

	Ping(ctx context.Context) error
	Close() error
}
