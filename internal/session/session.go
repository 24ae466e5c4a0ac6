// Package session tracks which identity is active and hands out the stores bound to it.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/heartmarshall/howzue/internal/domain"
)

type listener struct {
	id int
	fn func(ctx context.Context, id domain.Identity, ok bool)
}

// Session is the identity boundary of a single-user client. It starts with no
// identity; Logout falls back to the guest namespace.
type Session struct {
	log *slog.Logger

	mu        sync.Mutex
	identity  domain.Identity
	ok        bool
	listeners []listener
	nextID    int
}

// New creates a Session with no identity.
func New(log *slog.Logger) *Session {
	return &Session{log: log.With("service", "session")}
}

// Current returns the active identity; ok is false before any Login or Logout.
func (s *Session) Current() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.ok
}

// Subscribe registers fn for identity changes. Listeners run synchronously, in
// registration order, on the goroutine that changed the identity.
func (s *Session) Subscribe(fn func(ctx context.Context, id domain.Identity, ok bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Login makes id the active identity. Logging in as the current identity is a no-op.
func (s *Session) Login(ctx context.Context, id domain.Identity) error {
	if strings.TrimSpace(id.String()) == "" {
		return domain.NewValidationError("identity", "required")
	}
	s.set(ctx, id, true)
	return nil
}

// Logout returns to the guest namespace.
func (s *Session) Logout(ctx context.Context) {
	s.set(ctx, domain.GuestIdentity, true)
}

// End drops the identity altogether; stores bound to the session clear themselves.
func (s *Session) End(ctx context.Context) {
	s.set(ctx, "", false)
}

func (s *Session) set(ctx context.Context, id domain.Identity, ok bool) {
	s.mu.Lock()
	if s.ok == ok && s.identity == id {
		s.mu.Unlock()
		return
	}
	s.identity, s.ok = id, ok
	ls := make([]listener, len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "identity changed",
		slog.String("identity", id.String()),
		slog.Bool("active", ok),
	)

	for _, l := range ls {
		l.fn(ctx, id, ok)
	}
}
