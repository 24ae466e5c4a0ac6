package journal

import (
	"context"
	"fmt"
	"log/slog"
)

// DeleteAll removes every entry of the active identity from the backend and
// then from memory. On failure nothing in memory changes.
func (s *Store) DeleteAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, gen, err := s.awaitActive(ctx)
	if err != nil {
		return fmt.Errorf("journal.DeleteAll: %w", err)
	}

	if err := s.repo.DeleteAllEntries(ctx, id); err != nil {
		s.log.WarnContext(ctx, "delete entries failed",
			slog.String("identity", id.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("journal.DeleteAll: %w", err)
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil
	}
	removed := len(s.entries)
	s.entries = nil
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	s.log.InfoContext(ctx, "entries deleted",
		slog.String("identity", id.String()),
		slog.Int("count", removed),
	)
	return nil
}
