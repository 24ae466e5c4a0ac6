package journal

import (
	"context"
	"sync"

	"github.com/heartmarshall/howzue/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	LoadEntriesFunc       func(ctx context.Context, id domain.Identity) ([]domain.JournalEntry, error)
	SaveEntryFunc         func(ctx context.Context, id domain.Identity, entry domain.JournalEntry) (domain.JournalEntry, error)
	ReplaceAllEntriesFunc func(ctx context.Context, id domain.Identity, entries []domain.JournalEntry) error
	DeleteAllEntriesFunc  func(ctx context.Context, id domain.Identity) error

	calls struct {
		LoadEntries []struct {
			Ctx context.Context
			ID  domain.Identity
		}
		SaveEntry []struct {
			Ctx   context.Context
			ID    domain.Identity
			Entry domain.JournalEntry
		}
		ReplaceAllEntries []struct {
			Ctx     context.Context
			ID      domain.Identity
			Entries []domain.JournalEntry
		}
		DeleteAllEntries []struct {
			Ctx context.Context
			ID  domain.Identity
		}
	}
	lockLoadEntries       sync.RWMutex
	lockSaveEntry         sync.RWMutex
	lockReplaceAllEntries sync.RWMutex
	lockDeleteAllEntries  sync.RWMutex
}

func (mock *entryRepoMock) LoadEntries(ctx context.Context, id domain.Identity) ([]domain.JournalEntry, error) {
	if mock.LoadEntriesFunc == nil {
		panic("entryRepoMock.LoadEntriesFunc: method is nil but entryRepo.LoadEntries was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  domain.Identity
	}{Ctx: ctx, ID: id}
	mock.lockLoadEntries.Lock()
	mock.calls.LoadEntries = append(mock.calls.LoadEntries, callInfo)
	mock.lockLoadEntries.Unlock()
	return mock.LoadEntriesFunc(ctx, id)
}

func (mock *entryRepoMock) LoadEntriesCalls() []struct {
	Ctx context.Context
	ID  domain.Identity
} {
	mock.lockLoadEntries.RLock()
	calls := mock.calls.LoadEntries
	mock.lockLoadEntries.RUnlock()
	return calls
}

func (mock *entryRepoMock) SaveEntry(ctx context.Context, id domain.Identity, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if mock.SaveEntryFunc == nil {
		panic("entryRepoMock.SaveEntryFunc: method is nil but entryRepo.SaveEntry was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    domain.Identity
		Entry domain.JournalEntry
	}{Ctx: ctx, ID: id, Entry: entry}
	mock.lockSaveEntry.Lock()
	mock.calls.SaveEntry = append(mock.calls.SaveEntry, callInfo)
	mock.lockSaveEntry.Unlock()
	return mock.SaveEntryFunc(ctx, id, entry)
}

func (mock *entryRepoMock) SaveEntryCalls() []struct {
	Ctx   context.Context
	ID    domain.Identity
	Entry domain.JournalEntry
} {
	mock.lockSaveEntry.RLock()
	calls := mock.calls.SaveEntry
	mock.lockSaveEntry.RUnlock()
	return calls
}

func (mock *entryRepoMock) ReplaceAllEntries(ctx context.Context, id domain.Identity, entries []domain.JournalEntry) error {
	if mock.ReplaceAllEntriesFunc == nil {
		panic("entryRepoMock.ReplaceAllEntriesFunc: method is nil but entryRepo.ReplaceAllEntries was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      domain.Identity
		Entries []domain.JournalEntry
	}{Ctx: ctx, ID: id, Entries: entries}
	mock.lockReplaceAllEntries.Lock()
	mock.calls.ReplaceAllEntries = append(mock.calls.ReplaceAllEntries, callInfo)
	mock.lockReplaceAllEntries.Unlock()
	return mock.ReplaceAllEntriesFunc(ctx, id, entries)
}

func (mock *entryRepoMock) ReplaceAllEntriesCalls() []struct {
	Ctx     context.Context
	ID      domain.Identity
	Entries []domain.JournalEntry
} {
	mock.lockReplaceAllEntries.RLock()
	calls := mock.calls.ReplaceAllEntries
	mock.lockReplaceAllEntries.RUnlock()
	return calls
}

func (mock *entryRepoMock) DeleteAllEntries(ctx context.Context, id domain.Identity) error {
	if mock.DeleteAllEntriesFunc == nil {
		panic("entryRepoMock.DeleteAllEntriesFunc: method is nil but entryRepo.DeleteAllEntries was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  domain.Identity
	}{Ctx: ctx, ID: id}
	mock.lockDeleteAllEntries.Lock()
	mock.calls.DeleteAllEntries = append(mock.calls.DeleteAllEntries, callInfo)
	mock.lockDeleteAllEntries.Unlock()
	return mock.DeleteAllEntriesFunc(ctx, id)
}

func (mock *entryRepoMock) DeleteAllEntriesCalls() []struct {
	Ctx context.Context
	ID  domain.Identity
} {
	mock.lockDeleteAllEntries.RLock()
	calls := mock.calls.DeleteAllEntries
	mock.lockDeleteAllEntries.RUnlock()
	return calls
}
