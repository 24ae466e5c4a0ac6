// Package settings holds the preferences of the active identity.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/howzue/internal/domain"
)

type settingsRepo interface {
	LoadSettings(ctx context.Context, id domain.Identity) (domain.Settings, error)
	SaveSettings(ctx context.Context, id domain.Identity, s domain.Settings) error
}

type identitySource interface {
	Current() (domain.Identity, bool)
	Subscribe(fn func(ctx context.Context, id domain.Identity, ok bool)) (cancel func())
}

// ErrIdentityChanged is returned when the active identity changed while an update was waiting.
var ErrIdentityChanged = fmt.Errorf("identity changed: %w", domain.ErrConflict)

// Snapshot is the store state at one version.
type Snapshot struct {
	Identity domain.Identity
	Active   bool
	Settings domain.Settings
	LoadErr  error
	Version  uint64
}

// Store is the Settings Store of one session. Before the first load and
// after a failed one it reports domain.DefaultSettings.
type Store struct {
	repo settingsRepo
	log  *slog.Logger

	writeMu sync.Mutex

	mu       sync.RWMutex
	identity domain.Identity
	active   bool
	gen      uint64
	ready    chan struct{}
	current  domain.Settings
	loadErr  error
	version  uint64
	subs     map[int]func(Snapshot)
	nextSub  int
}

// NewStore creates a Store with no active identity.
func NewStore(log *slog.Logger, repo settingsRepo) *Store {
	ready := make(chan struct{})
	close(ready)
	return &Store{
		repo:    repo,
		log:     log.With("service", "settings"),
		ready:   ready,
		current: domain.DefaultSettings(),
		subs:    make(map[int]func(Snapshot)),
	}
}

// Get returns the active identity's settings.
func (s *Store) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change.
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

// Switch makes id active and loads its settings. A missing record yields the
// defaults without error. Other failures yield the defaults, set LoadErr and
// are returned. Completions of superseded switches are discarded.
func (s *Store) Switch(ctx context.Context, id domain.Identity) error {
	ready := make(chan struct{})
	defer close(ready)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.ready = ready
	s.identity = id
	s.active = true
	s.current = domain.DefaultSettings()
	s.loadErr = nil
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	loaded, err := s.repo.LoadSettings(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		loaded, err = domain.DefaultSettings(), nil
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.DebugContext(ctx, "stale settings load discarded", slog.String("identity", id.String()))
		return nil
	}
	if err != nil {
		s.loadErr = err
		snap, fns = s.commitLocked()
		s.mu.Unlock()
		notify(snap, fns)

		s.log.WarnContext(ctx, "load settings failed",
			slog.String("identity", id.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("settings.Load: %w", err)
	}
	s.current = loaded
	snap, fns = s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)
	return nil
}

// Clear drops the active identity and returns to defaults.
func (s *Store) Clear() {
	ready := make(chan struct{})
	close(ready)

	s.mu.Lock()
	s.gen++
	s.ready = ready
	s.identity = ""
	s.active = false
	s.current = domain.DefaultSettings()
	s.loadErr = nil
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)
}

// Bind follows src the same way the entry store does.
func (s *Store) Bind(ctx context.Context, src identitySource) (cancel func()) {
	cancel = src.Subscribe(func(ctx context.Context, id domain.Identity, ok bool) {
		if !ok {
			s.Clear()
			return
		}
		_ = s.Switch(ctx, id)
	})

	if id, ok := src.Current(); ok {
		_ = s.Switch(ctx, id)
	} else {
		s.Clear()
	}
	return cancel
}

// Update replaces the settings of the active identity. The new value becomes
// visible only after it was persisted.
func (s *Store) Update(ctx context.Context, next domain.Settings) (domain.Settings, error) {
	if err := next.Validate(); err != nil {
		return domain.Settings{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	id, active, gen, ready := s.identity, s.active, s.gen, s.ready
	s.mu.RUnlock()
	if !active {
		return domain.Settings{}, fmt.Errorf("settings.Update: %w", domain.ErrIdentityMissing)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return domain.Settings{}, fmt.Errorf("settings.Update: %w", ctx.Err())
	}

	s.mu.RLock()
	changed := s.gen != gen
	s.mu.RUnlock()
	if changed {
		return domain.Settings{}, fmt.Errorf("settings.Update: %w", ErrIdentityChanged)
	}

	if err := s.repo.SaveSettings(ctx, id, next); err != nil {
		s.log.WarnContext(ctx, "save settings failed",
			slog.String("identity", id.String()),
			slog.String("error", err.Error()),
		)
		return domain.Settings{}, fmt.Errorf("settings.Update: %w", err)
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return next, nil
	}
	s.current = next
	s.loadErr = nil
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	s.log.InfoContext(ctx, "settings updated",
		slog.String("identity", id.String()),
		slog.String("theme", next.Theme.String()),
		slog.Bool("ai_insights", next.EnableAIInsights),
	)
	return next, nil
}

// Reset returns the active identity to the default settings.
func (s *Store) Reset(ctx context.Context) (domain.Settings, error) {
	return s.Update(ctx, domain.DefaultSettings())
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Identity: s.identity,
		Active:   s.active,
		Settings: s.current,
		LoadErr:  s.loadErr,
		Version:  s.version,
	}
}

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
