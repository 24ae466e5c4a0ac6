package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/stats"
)

// Export returns the entries oldest first, ready to be serialized.
func (s *Store) Export() []domain.JournalEntry {
	entries := s.Entries()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// Import replaces the whole collection of the active identity. Entries
// without an id get a fresh one; dates are stored in UTC.
func (s *Store) Import(ctx context.Context, entries []domain.JournalEntry) (int, error) {
	if err := validateImport(entries); err != nil {
		return 0, err
	}

	normalized := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		// Backends keep microseconds; match them so a reload exports the same dates.
		e.Date = e.Date.UTC().Truncate(time.Microsecond)
		normalized[i] = e
	}
	sortEntries(normalized)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, gen, err := s.awaitActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("journal.Import: %w", err)
	}

	if err := s.repo.ReplaceAllEntries(ctx, id, normalized); err != nil {
		s.log.WarnContext(ctx, "replace entries failed",
			slog.String("identity", id.String()),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("journal.Import: %w", err)
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return len(normalized), nil
	}
	s.entries = normalized
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	s.log.InfoContext(ctx, "entries imported",
		slog.String("identity", id.String()),
		slog.Int("count", len(normalized)),
	)
	return len(normalized), nil
}

// Stats derives streak and weekly average from the current entries.
func (s *Store) Stats() stats.Summary {
	return stats.Compute(s.Entries(), s.opts.Now(), s.opts.Location)
}

// Trend returns per-day mood averages, oldest day first.
func (s *Store) Trend() []stats.DayPoint {
	return stats.DailySeries(s.Entries(), s.opts.Location)
}
