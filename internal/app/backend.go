package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/howzue/internal/adapter"
	"github.com/heartmarshall/howzue/internal/adapter/llm"
	"github.com/heartmarshall/howzue/internal/adapter/local"
	"github.com/heartmarshall/howzue/internal/adapter/memory"
	"github.com/heartmarshall/howzue/internal/adapter/postgres/remote"
	"github.com/heartmarshall/howzue/internal/config"
	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/companion"
	"github.com/heartmarshall/howzue/internal/service/journal"
	"github.com/heartmarshall/howzue/internal/service/settings"
	"github.com/heartmarshall/howzue/internal/session"
)

// OpenBackend builds the persistence backend selected by cfg.Storage.
func OpenBackend(ctx context.Context, log *slog.Logger, cfg *config.Config) (adapter.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendLocal:
		b, err := local.New(local.Options{
			Path:         cfg.Storage.LocalPath,
			CacheSizeMax: cfg.Storage.CacheSizeMax,
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendPostgres:
		b, err := remote.Open(ctx, log, cfg.Database)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// JournalOptions translates the journal section of cfg.
func JournalOptions(cfg config.JournalConfig) journal.Options {
	return journal.Options{
		Policy:        domain.SameDayPolicy(cfg.SameDayPolicy),
		MinTextLength: cfg.MinTextLength,
		Location:      cfg.Location(),
	}
}

// NewStores returns a constructor of unbound entry and settings stores over backend.
func NewStores(log *slog.Logger, cfg *config.Config, backend adapter.Backend) func() session.Stores {
	opts := JournalOptions(cfg.Journal)
	return func() session.Stores {
		return session.Stores{
			Journal:  journal.NewStore(log, backend, opts),
			Settings: settings.NewStore(log, backend),
		}
	}
}

// NewCompanion builds the AI companion. Without an API key every call fails
// with companion.ErrNotConfigured.
func NewCompanion(log *slog.Logger, cfg config.AIConfig) *companion.Service {
	if !cfg.Enabled() {
		return companion.New(log, nil)
	}
	return companion.New(log, llm.New(log, cfg))
}
