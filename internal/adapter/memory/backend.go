// Package memory is an in-process Backend. Data lives as long as the value.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/howzue/internal/domain"
)

// Backend keeps entries and settings in maps.
type Backend struct {
	mu       sync.RWMutex
	entries  map[domain.Identity][]domain.JournalEntry
	settings map[domain.Identity]domain.Settings
}

// New creates an empty Backend.
func New() *Backend {
	return &Backend{
		entries:  make(map[domain.Identity][]domain.JournalEntry),
		settings: make(map[domain.Identity]domain.Settings),
	}
}

func (b *Backend) LoadEntries(_ context.Context, id domain.Identity) ([]domain.JournalEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.JournalEntry, len(b.entries[id]))
	copy(out, b.entries[id])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (b *Backend) SaveEntry(_ context.Context, id domain.Identity, e domain.JournalEntry) (domain.JournalEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.entries[id]
	for i := range list {
		if list[i].ID == e.ID {
			list[i] = e
			return e, nil
		}
	}
	b.entries[id] = append(list, e)
	return e, nil
}

func (b *Backend) ReplaceAllEntries(_ context.Context, id domain.Identity, entries []domain.JournalEntry) error {
	list := make([]domain.JournalEntry, len(entries))
	copy(list, entries)
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = uuid.NewString()
		}
	}

	b.mu.Lock()
	b.entries[id] = list
	b.mu.Unlock()
	return nil
}

func (b *Backend) DeleteAllEntries(_ context.Context, id domain.Identity) error {
	b.mu.Lock()
	delete(b.entries, id)
	b.mu.Unlock()
	return nil
}

func (b *Backend) LoadSettings(_ context.Context, id domain.Identity) (domain.Settings, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, ok := b.settings[id]
	if !ok {
		return domain.Settings{}, domain.ErrNotFound
	}
	return s, nil
}

func (b *Backend) SaveSettings(_ context.Context, id domain.Identity, s domain.Settings) error {
	b.mu.Lock()
	b.settings[id] = s
	b.mu.Unlock()
	return nil
}

func (b *Backend) Ping(context.Context) error { return nil }

func (b *Backend) Close() error { return nil }
