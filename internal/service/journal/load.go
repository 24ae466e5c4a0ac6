package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/howzue/internal/domain"
)

// Switch makes id the active identity and loads its entries.
//
// The previous identity's entries are dropped immediately. A load that
// completes after a later Switch or Clear is discarded. A failed load leaves
// the store empty with Snapshot.LoadErr set and returns the error.
func (s *Store) Switch(ctx context.Context, id domain.Identity) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	ready := make(chan struct{})
	s.ready = ready
	s.identity = id
	s.active = true
	s.loading = true
	s.loadErr = nil
	s.entries = nil
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	defer close(ready)
	return s.load(ctx, id, gen)
}

// Clear drops the active identity. Mutations fail with domain.ErrIdentityMissing until the next Switch.
func (s *Store) Clear() {
	s.mu.Lock()
	s.gen++
	s.ready = closedChan()
	s.identity = ""
	s.active = false
	s.loading = false
	s.loadErr = nil
	s.entries = nil
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)
}

// Load re-reads the active identity's entries from the backend.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, gen, err := s.awaitActive(ctx)
	if err != nil {
		return fmt.Errorf("journal.Load: %w", err)
	}
	return s.load(ctx, id, gen)
}

// Bind follows src: every identity change triggers Switch, a logout without
// a fallback identity triggers Clear. It returns the unsubscribe function.
func (s *Store) Bind(ctx context.Context, src identitySource) (cancel func()) {
	cancel = src.Subscribe(func(ctx context.Context, id domain.Identity, ok bool) {
		if !ok {
			s.Clear()
			return
		}
		// Failures are recorded in the snapshot and logged by load.
		_ = s.Switch(ctx, id)
	})

	if id, ok := src.Current(); ok {
		_ = s.Switch(ctx, id)
	} else {
		s.Clear()
	}
	return cancel
}

func (s *Store) load(ctx context.Context, id domain.Identity, gen uint64) error {
	entries, err := s.repo.LoadEntries(ctx, id)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.DebugContext(ctx, "stale load discarded", slog.String("identity", id.String()))
		return nil
	}

	s.loading = false
	if err != nil {
		s.loadErr = err
		s.entries = nil
		snap, fns := s.commitLocked()
		s.mu.Unlock()
		notify(snap, fns)

		s.log.WarnContext(ctx, "load entries failed",
			slog.String("identity", id.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("journal.Load: %w", err)
	}

	sortEntries(entries)
	s.loadErr = nil
	s.entries = entries
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	s.log.DebugContext(ctx, "entries loaded",
		slog.String("identity", id.String()),
		slog.Int("entries", len(entries)),
	)
	return nil
}

// awaitActive waits for the active identity's initial load and returns the
// identity and generation a write must commit against. Caller holds writeMu.
func (s *Store) awaitActive(ctx context.Context) (domain.Identity, uint64, error) {
	s.mu.RLock()
	id, active, gen, ready := s.identity, s.active, s.gen, s.ready
	s.mu.RUnlock()

	if !active {
		return "", 0, domain.ErrIdentityMissing
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return "", 0, ctx.Err()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen != gen {
		return "", 0, ErrIdentityChanged
	}
	return id, gen, nil
}
