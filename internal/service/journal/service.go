// Package journal holds the in-memory entry collection of the active identity
// and keeps it in step with the persistence backend.
package journal

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/heartmarshall/howzue/internal/domain"
)

type entryRepo interface {
	LoadEntries(ctx context.Context, id domain.Identity) ([]domain.JournalEntry, error)
	SaveEntry(ctx context.Context, id domain.Identity, entry domain.JournalEntry) (domain.JournalEntry, error)
	ReplaceAllEntries(ctx context.Context, id domain.Identity, entries []domain.JournalEntry) error
	DeleteAllEntries(ctx context.Context, id domain.Identity) error
}

type identitySource interface {
	Current() (domain.Identity, bool)
	Subscribe(fn func(ctx context.Context, id domain.Identity, ok bool)) (cancel func())
}

// Options tunes store behaviour. Zero values fall back to defaults.
type Options struct {
	Policy        domain.SameDayPolicy
	MinTextLength int
	Location      *time.Location
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if !o.Policy.IsValid() {
		o.Policy = domain.SameDayOverwrite
	}
	if o.MinTextLength < 0 {
		o.MinTextLength = 0
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Snapshot is an immutable view of the store at one version. LoadErr is set
// when the last load failed; Entries is then empty.
type Snapshot struct {
	Identity domain.Identity
	Active   bool
	Loading  bool
	LoadErr  error
	Entries  []domain.JournalEntry
	Version  uint64
}

// Store is the Entry Store of one session.
//
// Mutations are linearized by writeMu and wait for the identity's initial load.
// gen identifies the active identity selection; any load or write completion
// that observes a different gen is discarded.
type Store struct {
	repo entryRepo
	opts Options
	log  *slog.Logger

	writeMu sync.Mutex

	mu       sync.RWMutex
	identity domain.Identity
	active   bool
	gen      uint64
	ready    chan struct{}
	loading  bool
	loadErr  error
	entries  []domain.JournalEntry
	version  uint64
	subs     map[int]func(Snapshot)
	nextSub  int
}

// NewStore creates a Store with no active identity.
func NewStore(log *slog.Logger, repo entryRepo, opts Options) *Store {
	return &Store{
		repo:  repo,
		opts:  opts.withDefaults(),
		log:   log.With("service", "journal"),
		ready: closedChan(),
		subs:  make(map[int]func(Snapshot)),
	}
}

// Policy returns the same-day policy in effect.
func (s *Store) Policy() domain.SameDayPolicy { return s.opts.Policy }

// Location returns the calendar time zone used for day boundaries.
func (s *Store) Location() *time.Location { return s.opts.Location }

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs synchronously on the goroutine that made the change.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Entries returns a copy of the entries, most recent first.
func (s *Store) Entries() []domain.JournalEntry {
	return s.Snapshot().Entries
}

// snapshotLocked must be called with mu held.
func (s *Store) snapshotLocked() Snapshot {
	entries := make([]domain.JournalEntry, len(s.entries))
	copy(entries, s.entries)
	return Snapshot{
		Identity: s.identity,
		Active:   s.active,
		Loading:  s.loading,
		LoadErr:  s.loadErr,
		Entries:  entries,
		Version:  s.version,
	}
}

// commitLocked bumps the version and returns the snapshot and subscribers to notify.
// It must be called with mu held; notify must run after unlocking.
func (s *Store) commitLocked() (Snapshot, []func(Snapshot)) {
	s.version++
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return s.snapshotLocked(), fns
}

func notify(snap Snapshot, fns []func(Snapshot)) {
	for _, fn := range fns {
		fn(snap)
	}
}

// sortEntries orders entries by date descending, ties by id ascending.
func sortEntries(entries []domain.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
