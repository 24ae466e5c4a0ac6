// Package local is the on-device Backend. Each identity owns one JSON document
// for its entries and one for its settings, stored through diskv.
package local

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/heartmarshall/howzue/internal/domain"
)

const (
	entriesPrefix  = "entries-"
	settingsPrefix = "settings-"
	sessionKey     = "session"
	tempDirName    = ".tmp"
)

// Options configures the Backend.
type Options struct {
	// Path is the directory holding the documents. It must already be expanded.
	Path string
	// CacheSizeMax bounds diskv's read cache in bytes.
	CacheSizeMax uint64
}

// Backend stores whole documents per key. Writes go through a temporary file
// and a rename, so a reader never sees a partially written document.
type Backend struct {
	d    *diskv.Diskv
	path string

	// mu serializes read-modify-write cycles on the same document set.
	mu sync.Mutex
}

// New opens (creating if needed) a Backend rooted at opts.Path.
func New(opts Options) (*Backend, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("local: path is required")
	}
	if err := os.MkdirAll(opts.Path, 0o700); err != nil {
		return nil, domain.StorageError("local.New", err)
	}

	d := diskv.New(diskv.Options{
		BasePath:     opts.Path,
		TempDir:      filepath.Join(opts.Path, tempDirName),
		CacheSizeMax: opts.CacheSizeMax,
		FilePerm:     0o600,
		PathPerm:     0o700,
	})

	return &Backend{d: d, path: opts.Path}, nil
}

func entriesKey(id domain.Identity) string {
	return entriesPrefix + base64.RawURLEncoding.EncodeToString([]byte(id))
}

func settingsKey(id domain.Identity) string {
	return settingsPrefix + base64.RawURLEncoding.EncodeToString([]byte(id))
}

// readDoc decodes key into v. found is false when the key does not exist.
func (b *Backend) readDoc(key string, v any) (found bool, err error) {
	if !b.d.Has(key) {
		return false, nil
	}
	raw, err := b.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (b *Backend) writeDoc(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.d.Write(key, raw)
}

func (b *Backend) readEntries(id domain.Identity) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	if _, err := b.readDoc(entriesKey(id), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *Backend) LoadEntries(_ context.Context, id domain.Identity) ([]domain.JournalEntry, error) {
	b.mu.Lock()
	entries, err := b.readEntries(id)
	b.mu.Unlock()
	if err != nil {
		return nil, domain.StorageError("local.LoadEntries", err)
	}

	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	return entries, nil
}

func (b *Backend) SaveEntry(_ context.Context, id domain.Identity, e domain.JournalEntry) (domain.JournalEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.readEntries(id)
	if err != nil {
		return domain.JournalEntry{}, domain.StorageError("local.SaveEntry", err)
	}

	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}

	if err := b.writeDoc(entriesKey(id), entries); err != nil {
		return domain.JournalEntry{}, domain.StorageError("local.SaveEntry", err)
	}
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
	defer b.mu.Unlock()

	if err := b.writeDoc(entriesKey(id), list); err != nil {
		return domain.StorageError("local.ReplaceAllEntries", err)
	}
	return nil
}

func (b *Backend) DeleteAllEntries(_ context.Context, id domain.Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := entriesKey(id)
	if !b.d.Has(key) {
		return nil
	}
	if err := b.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.StorageError("local.DeleteAllEntries", err)
	}
	return nil
}

func (b *Backend) LoadSettings(_ context.Context, id domain.Identity) (domain.Settings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var s domain.Settings
	found, err := b.readDoc(settingsKey(id), &s)
	if err != nil {
		return domain.Settings{}, domain.StorageError("local.LoadSettings", err)
	}
	if !found {
		return domain.Settings{}, domain.ErrNotFound
	}
	return s, nil
}

func (b *Backend) SaveSettings(_ context.Context, id domain.Identity, s domain.Settings) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.writeDoc(settingsKey(id), s); err != nil {
		return domain.StorageError("local.SaveSettings", err)
	}
	return nil
}

// Ping checks that the storage directory is still reachable.
func (b *Backend) Ping(context.Context) error {
	info, err := os.Stat(b.path)
	if err != nil {
		return domain.StorageError("local.Ping", err)
	}
	if !info.IsDir() {
		return domain.StorageError("local.Ping", fmt.Errorf("%s is not a directory", b.path))
	}
	return nil
}

func (b *Backend) Close() error { return nil }

type sessionDoc struct {
	Identity domain.Identity `json:"identity"`
}

// LoadSession returns the identity remembered by the command line client.
// ok is false when nobody logged in on this device.
func (b *Backend) LoadSession() (id domain.Identity, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var doc sessionDoc
	found, err := b.readDoc(sessionKey, &doc)
	if err != nil {
		return "", false, domain.StorageError("local.LoadSession", err)
	}
	if !found || doc.Identity == "" {
		return "", false, nil
	}
	return doc.Identity, true, nil
}

// SaveSession remembers id for the next invocation.
func (b *Backend) SaveSession(id domain.Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.writeDoc(sessionKey, sessionDoc{Identity: id}); err != nil {
		return domain.StorageError("local.SaveSession", err)
	}
	return nil
}

// ClearSession forgets the remembered identity.
func (b *Backend) ClearSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.d.Has(sessionKey) {
		return nil
	}
	if err := b.d.Erase(sessionKey); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.StorageError("local.ClearSession", err)
	}
	return nil
}
