package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/stats"
)

// AddEntry logs a mood for now.
//
// Under SameDayOverwrite an existing entry of today's calendar day keeps its id
// and date and takes the new mood and text. Otherwise a new entry is created.
// The in-memory collection changes only after the backend accepted the write.
func (s *Store) AddEntry(ctx context.Context, input AddEntryInput) (domain.JournalEntry, error) {
	if err := input.Validate(s.opts.MinTextLength); err != nil {
		return domain.JournalEntry{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, gen, err := s.awaitActive(ctx)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("journal.AddEntry: %w", err)
	}

	now := s.opts.Now()
	entry, replacing := s.entryFor(now, input)

	saved, err := s.repo.SaveEntry(ctx, id, entry)
	if err != nil {
		s.log.WarnContext(ctx, "save entry failed",
			slog.String("identity", id.String()),
			slog.String("error", err.Error()),
		)
		return domain.JournalEntry{}, fmt.Errorf("journal.AddEntry: %w", err)
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.DebugContext(ctx, "entry saved for inactive identity", slog.String("identity", id.String()))
		return saved, nil
	}
	s.upsertLocked(saved)
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	notify(snap, fns)

	s.log.InfoContext(ctx, "entry saved",
		slog.String("identity", id.String()),
		slog.String("entry_id", saved.ID),
		slog.String("mood", saved.Mood.String()),
		slog.Bool("replaced", replacing),
	)

	return saved, nil
}

// entryFor builds the entry to persist. Caller holds writeMu.
func (s *Store) entryFor(now time.Time, input AddEntryInput) (domain.JournalEntry, bool) {
	text := strings.TrimSpace(input.Text)

	if s.opts.Policy == domain.SameDayOverwrite {
		today := stats.DayStart(now, s.opts.Location)

		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, e := range s.entries {
			if stats.DayStart(e.Date, s.opts.Location).Equal(today) {
				e.Mood = input.Mood
				e.Text = text
				return e, true
			}
		}
	}

	return domain.JournalEntry{
		ID:   uuid.NewString(),
		Date: now.UTC(),
		Mood: input.Mood,
		Text: text,
	}, false
}

// upsertLocked replaces the entry with the same id or inserts it. Caller holds mu.
func (s *Store) upsertLocked(e domain.JournalEntry) {
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = e
			sortEntries(s.entries)
			return
		}
	}
	entries := make([]domain.JournalEntry, 0, len(s.entries)+1)
	entries = append(entries, e)
	entries = append(entries, s.entries...)
	sortEntries(entries)
	s.entries = entries
}
