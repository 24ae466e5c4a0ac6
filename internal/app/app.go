package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/howzue/internal/adapter"
	"github.com/heartmarshall/howzue/internal/auth"
	"github.com/heartmarshall/howzue/internal/config"
	"github.com/heartmarshall/howzue/internal/service/companion"
	"github.com/heartmarshall/howzue/internal/session"
	"github.com/heartmarshall/howzue/internal/transport/middleware"
	"github.com/heartmarshall/howzue/internal/transport/rest"
)

// Run is the entry point of the HTTP API. It loads configuration, opens the
// storage backend and serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stdout)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("backend", cfg.Storage.Backend),
		slog.Bool("ai_enabled", cfg.AI.Enabled()),
	)

	backend, err := OpenBackend(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("close backend", slog.String("error", err.Error()))
		}
	}()

	pool, err := session.NewPool(logger, cfg.Sessions.MaxResident, NewStores(logger, cfg, backend))
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	handler := NewHTTPHandler(logger, cfg, backend, pool, NewCompanion(logger, cfg.AI), tokens, limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// NewHTTPHandler assembles the REST router behind the shared middleware chain.
func NewHTTPHandler(
	logger *slog.Logger,
	cfg *config.Config,
	backend adapter.Backend,
	pool *session.Pool,
	svc *companion.Service,
	tokens *auth.JWTManager,
	limiter *middleware.RateLimiter,
) http.Handler {
	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(backend, cfg.Storage.Backend, pool, Version),
		Auth:     rest.NewAuthHandler(tokens, logger),
		Entries:  rest.NewEntryHandler(pool, logger),
		Settings: rest.NewSettingsHandler(pool, logger),
		AI:       rest.NewAIHandler(pool, svc, logger),
	}, rest.Limits{
		Login: limit(limiter, cfg.RateLimit.LoginPerMinute),
		AI:    limit(limiter, cfg.RateLimit.AIPerMinute),
	})

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens),
	)(router)
}

// limit returns nil for a zero budget, which leaves the route unlimited.
func limit(rl *middleware.RateLimiter, perMinute int) middleware.Middleware {
	if perMinute <= 0 {
		return nil
	}
	return rl.Limit(perMinute)
}
