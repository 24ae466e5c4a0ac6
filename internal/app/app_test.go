package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/howzue/internal/adapter/local"
	"github.com/heartmarshall/howzue/internal/adapter/memory"
	"github.com/heartmarshall/howzue/internal/auth"
	"github.com/heartmarshall/howzue/internal/config"
	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/companion"
	"github.com/heartmarshall/howzue/internal/session"
	"github.com/heartmarshall/howzue/internal/transport/middleware"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendMemory},
		Auth: config.AuthConfig{
			JWTSecret:      strings.Repeat("s", 32),
			JWTIssuer:      "howzue-test",
			AccessTokenTTL: time.Hour,
		},
		Journal:   config.JournalConfig{SameDayPolicy: "append", Timezone: "UTC"},
		Sessions:  config.SessionsConfig{MaxResident: 4},
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST", AllowedHeaders: "Authorization"},
		RateLimit: config.RateLimitConfig{LoginPerMinute: 2, CleanupInterval: time.Minute},
	}
}

func TestOpenBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := discardLogger()

	cfg := testConfig()
	b, err := OpenBackend(ctx, log, cfg)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := b.(*memory.Backend); !ok {
		t.Errorf("memory: got %T", b)
	}

	cfg = testConfig()
	cfg.Storage.Backend = config.BackendLocal
	cfg.Storage.LocalPath = t.TempDir()
	b, err = OpenBackend(ctx, log, cfg)
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if _, ok := b.(*local.Backend); !ok {
		t.Errorf("local: got %T", b)
	}

	cfg = testConfig()
	cfg.Storage.Backend = "s3"
	if b, err := OpenBackend(ctx, log, cfg); err == nil || b != nil {
		t.Errorf("unknown backend: got %v, %v", b, err)
	}
}

func TestJournalOptions(t *testing.T) {
	t.Parallel()

	opts := JournalOptions(config.JournalConfig{SameDayPolicy: "append", MinTextLength: 3, Timezone: "Europe/Berlin"})
	if opts.Policy != domain.SameDayAppend || opts.MinTextLength != 3 {
		t.Errorf("options = %+v", opts)
	}
	if opts.Location.String() != "Europe/Berlin" {
		t.Errorf("location = %v", opts.Location)
	}
}

func TestNewCompanion_WithoutKey(t *testing.T) {
	t.Parallel()

	svc := NewCompanion(discardLogger(), config.AIConfig{})
	entries := []domain.JournalEntry{{Date: time.Now(), Mood: domain.MoodGood}}
	_, err := svc.ReflectionPrompts(context.Background(), domain.DefaultSettings(), entries)
	if !errors.Is(err, companion.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func newTestHandler(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	cfg := testConfig()
	backend := memory.New()

	pool, err := session.NewPool(log, cfg.Sessions.MaxResident, NewStores(log, cfg, backend))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	t.Cleanup(limiter.Stop)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	return NewHTTPHandler(log, cfg, backend, pool, NewCompanion(log, cfg.AI), tokens, limiter), &logs
}

func TestNewHTTPHandler_LoginAndLog(t *testing.T) {
	t.Parallel()

	h, logs := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ada@example.com"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", rec.Code, rec.Body)
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("request id header missing")
	}

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, mood := range []string{"good", "bad"} {
		req = httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"mood":"`+mood+`"}`))
		req.Header.Set("Authorization", "Bearer "+login.AccessToken)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add %s: status %d: %s", mood, rec.Code, rec.Body)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var list struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 2 {
		t.Errorf("count = %d, want 2 with the append policy", list.Count)
	}

	if !strings.Contains(logs.String(), string(domain.IdentityFromEmail("ada@example.com"))) {
		t.Error("request log does not carry the identity")
	}
}

func TestNewHTTPHandler_LoginRateLimited(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	var last int
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"guest":true}`))
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third login: status %d, want 429", last)
	}
}
