package session

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/journal"
	"github.com/heartmarshall/howzue/internal/service/settings"
)

// Stores is the pair of stores serving one identity.
type Stores struct {
	Journal  *journal.Store
	Settings *settings.Store
}

// Pool keeps the stores of recently active identities resident, so that
// every request of one identity goes through the same linearized stores.
// Least recently used identities are evicted beyond the configured size.
type Pool struct {
	log       *slog.Logger
	newStores func() Stores
	cache     *lru.Cache[domain.Identity, Stores]
	group     singleflight.Group
}

// NewPool creates a Pool of at most size identities. newStores builds a fresh,
// unbound pair of stores.
func NewPool(log *slog.Logger, size int, newStores func() Stores) (*Pool, error) {
	p := &Pool{
		log:       log.With("service", "session_pool"),
		newStores: newStores,
	}

	cache, err := lru.NewWithEvict(size, func(id domain.Identity, _ Stores) {
		p.log.Debug("identity evicted", slog.String("identity", id.String()))
	})
	if err != nil {
		return nil, fmt.Errorf("session pool: %w", err)
	}
	p.cache = cache
	return p, nil
}

// Get returns the stores of id, loading them on first use. A failed entry
// load is returned and not cached, so the next call retries.
//
// Concurrent callers for one identity share a single load, which runs
// detached from the cancellation of whichever caller started it.
func (p *Pool) Get(ctx context.Context, id domain.Identity) (Stores, error) {
	if st, ok := p.cache.Get(id); ok {
		return st, nil
	}

	v, err, _ := p.group.Do(id.String(), func() (any, error) {
		if st, ok := p.cache.Get(id); ok {
			return st, nil
		}

		loadCtx := context.WithoutCancel(ctx)
		st := p.newStores()
		if err := st.Journal.Switch(loadCtx, id); err != nil {
			return Stores{}, err
		}
		if err := st.Settings.Switch(loadCtx, id); err != nil {
			return Stores{}, err
		}

		p.cache.Add(id, st)
		p.log.DebugContext(loadCtx, "identity loaded", slog.String("identity", id.String()))
		return st, nil
	})
	if err != nil {
		return Stores{}, fmt.Errorf("session pool: %w", err)
	}
	return v.(Stores), nil
}

// Evict drops the resident stores of id, forcing a reload on the next Get.
func (p *Pool) Evict(id domain.Identity) {
	p.cache.Remove(id)
}

// Len returns the number of resident identities.
func (p *Pool) Len() int {
	return p.cache.Len()
}
