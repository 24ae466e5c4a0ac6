// Package adaptertest is the behavioural contract every adapter.Backend must satisfy.
package adaptertest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/howzue/internal/adapter"
	"github.com/heartmarshall/howzue/internal/domain"
)

// Factory returns a ready backend. Backends may be shared between subtests;
// every subtest uses its own identities.
type Factory func(t *testing.T) adapter.Backend

// Run executes the contract against backends built by newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, b adapter.Backend)
	}{
		{"LoadEntries_Empty", testLoadEntriesEmpty},
		{"SaveEntry_AssignsID", testSaveEntryAssignsID},
		{"SaveEntry_UpsertByID", testSaveEntryUpsert},
		{"LoadEntries_OrderedByDateDesc", testLoadEntriesOrder},
		{"LoadEntries_PreservesFields", testLoadEntriesPreservesFields},
		{"ReplaceAllEntries", testReplaceAllEntries},
		{"DeleteAllEntries_Durable", testDeleteAllDurable},
		{"DeleteAllEntries_Empty", testDeleteAllEmpty},
		{"Identities_AreIsolated", testIdentitiesIsolated},
		{"LoadSettings_NotFound", testLoadSettingsNotFound},
		{"Settings_RoundTrip", testSettingsRoundTrip},
		{"SaveEntry_Concurrent", testSaveEntryConcurrent},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newBackend(t))
		})
	}
}

func newIdentity() domain.Identity {
	return domain.Identity("contract-" + uuid.NewString())
}

// at builds a whole-hour UTC timestamp.
func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func testLoadEntriesEmpty(t *testing.T, b adapter.Backend) {
	entries, err := b.LoadEntries(context.Background(), newIdentity())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testSaveEntryAssignsID(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	saved, err := b.SaveEntry(ctx, id, domain.JournalEntry{Date: at(2024, 6, 1, 9), Mood: domain.MoodGood, Text: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, saved.ID, entries[0].ID)
}

func testSaveEntryUpsert(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	e := domain.JournalEntry{ID: uuid.NewString(), Date: at(2024, 6, 1, 9), Mood: domain.MoodBad, Text: "before"}
	_, err := b.SaveEntry(ctx, id, e)
	require.NoError(t, err)

	e.Mood = domain.MoodGreat
	e.Text = "after"
	_, err = b.SaveEntry(ctx, id, e)
	require.NoError(t, err)

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.MoodGreat, entries[0].Mood)
	assert.Equal(t, "after", entries[0].Text)
}

func testLoadEntriesOrder(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	for _, d := range []int{3, 1, 5, 2} {
		_, err := b.SaveEntry(ctx, id, domain.JournalEntry{Date: at(2024, 6, d, 12), Mood: domain.MoodOkay})
		require.NoError(t, err)
	}

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.After(entries[i-1].Date), "entries not descending at %d", i)
	}
}

func testLoadEntriesPreservesFields(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	want := domain.JournalEntry{
		ID:   uuid.NewString(),
		Date: time.Date(2024, 2, 29, 23, 59, 58, 123456000, time.UTC),
		Mood: domain.MoodAwful,
		Text: "ünïcode ✓ and \"quotes\"",
	}
	_, err := b.SaveEntry(ctx, id, want)
	require.NoError(t, err)

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.Date.Equal(got.Date), "date: got %v, want %v", got.Date, want.Date)
	assert.Equal(t, want.Mood, got.Mood)
	assert.Equal(t, want.Text, got.Text)
}

func testReplaceAllEntries(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	_, err := b.SaveEntry(ctx, id, domain.JournalEntry{Date: at(2024, 6, 1, 9), Mood: domain.MoodOkay})
	require.NoError(t, err)

	replacement := []domain.JournalEntry{
		{ID: uuid.NewString(), Date: at(2024, 5, 1, 9), Mood: domain.MoodGood},
		{ID: uuid.NewString(), Date: at(2024, 5, 2, 9), Mood: domain.MoodBad},
	}
	require.NoError(t, b.ReplaceAllEntries(ctx, id, replacement))

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, replacement[1].ID, entries[0].ID)
	assert.Equal(t, replacement[0].ID, entries[1].ID)

	require.NoError(t, b.ReplaceAllEntries(ctx, id, nil))
	entries, err = b.LoadEntries(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testDeleteAllDurable(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	for i := 0; i < 3; i++ {
		_, err := b.SaveEntry(ctx, id, domain.JournalEntry{Date: at(2024, 6, 1+i, 9), Mood: domain.MoodGood})
		require.NoError(t, err)
	}

	require.NoError(t, b.DeleteAllEntries(ctx, id))

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testDeleteAllEmpty(t *testing.T, b adapter.Backend) {
	require.NoError(t, b.DeleteAllEntries(context.Background(), newIdentity()))
}

func testIdentitiesIsolated(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	alice, bob := newIdentity(), newIdentity()

	_, err := b.SaveEntry(ctx, alice, domain.JournalEntry{Date: at(2024, 6, 1, 9), Mood: domain.MoodGood})
	require.NoError(t, err)
	_, err = b.SaveEntry(ctx, bob, domain.JournalEntry{Date: at(2024, 6, 1, 9), Mood: domain.MoodBad})
	require.NoError(t, err)
	require.NoError(t, b.SaveSettings(ctx, alice, domain.Settings{Theme: domain.ThemeDark}))

	require.NoError(t, b.DeleteAllEntries(ctx, alice))

	bobEntries, err := b.LoadEntries(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobEntries, 1)
	assert.Equal(t, domain.MoodBad, bobEntries[0].Mood)

	_, err = b.LoadSettings(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testLoadSettingsNotFound(t *testing.T, b adapter.Backend) {
	_, err := b.LoadSettings(context.Background(), newIdentity())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testSettingsRoundTrip(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	for _, want := range []domain.Settings{
		{Theme: domain.ThemeDark, EnableAIInsights: false},
		{Theme: domain.ThemeLight, EnableAIInsights: true},
		domain.DefaultSettings(),
	} {
		require.NoError(t, b.SaveSettings(ctx, id, want))
		got, err := b.LoadSettings(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func testSaveEntryConcurrent(t *testing.T, b adapter.Backend) {
	ctx := context.Background()
	id := newIdentity()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := b.SaveEntry(ctx, id, domain.JournalEntry{Date: at(2024, 1, 1+i, 9), Mood: domain.MoodOkay})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := b.LoadEntries(ctx, id)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func testPing(t *testing.T, b adapter.Backend) {
	assert.NoError(t, b.Ping(context.Background()))
}
