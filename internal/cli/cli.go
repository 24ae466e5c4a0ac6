// Package cli implements the single-user command line journal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/howzue/internal/adapter"
	"github.com/heartmarshall/howzue/internal/adapter/local"
	"github.com/heartmarshall/howzue/internal/app"
	"github.com/heartmarshall/howzue/internal/config"
	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/companion"
	"github.com/heartmarshall/howzue/internal/service/journal"
	"github.com/heartmarshall/howzue/internal/service/settings"
	"github.com/heartmarshall/howzue/internal/session"
)

type textModel interface {
	Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error)
}

// Options customizes New. The zero value loads configuration from the
// environment and talks to the configured AI service.
type Options struct {
	Config *config.Config
	Model  textModel
	Logger *slog.Logger
}

// env holds everything a command needs. It is filled by open before the
// command runs.
type env struct {
	opts    Options
	verbose bool

	cfg *config.Config
	log *slog.Logger

	device    *local.Backend
	backend   adapter.Backend
	session   *session.Session
	journal   *journal.Store
	settings  *settings.Store
	companion *companion.Service
	unbind    []func()
}

// New builds the root command. The returned release func closes the storage
// the invoked command opened; call it after Execute returns, whatever the
// outcome, because cobra skips post-run hooks when a command fails.
func New(opts Options) (*cobra.Command, func() error) {
	cmd, e := newCommand(opts)
	return cmd, e.close
}

func newCommand(opts Options) (*cobra.Command, *env) {
	e := &env{opts: opts}

	cmd := &cobra.Command{
		Use:          "howzue",
		Short:        "A mood journal for the command line.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(commandContext(cmd))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log store activity to stderr")

	addLogin(cmd, e)
	addLogout(cmd, e)
	addWhoami(cmd, e)
	addLog(cmd, e)
	addEntries(cmd, e)
	addDeleteAll(cmd, e)
	addExport(cmd, e)
	addImport(cmd, e)
	addStats(cmd, e)
	addTrend(cmd, e)
	addSettings(cmd, e)
	addAI(cmd, e)
	addVersion(cmd)

	return cmd, e
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (e *env) open(ctx context.Context) error {
	cfg := e.opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	e.cfg = cfg

	e.log = e.opts.Logger
	if e.log == nil {
		level := "warn"
		if e.verbose {
			level = "debug"
		}
		e.log = app.NewLogger(config.LogConfig{Level: level, Format: "text"}, os.Stderr)
	}

	device, err := local.New(local.Options{Path: cfg.Storage.LocalPath, CacheSizeMax: cfg.Storage.CacheSizeMax})
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	e.device = device

	if cfg.Storage.Backend == config.BackendLocal {
		e.backend = device
	} else {
		backend, err := app.OpenBackend(ctx, e.log, cfg)
		if err != nil {
			return fmt.Errorf("open backend: %w", err)
		}
		e.backend = backend
	}

	e.session = session.New(e.log)
	e.journal = journal.NewStore(e.log, e.backend, app.JournalOptions(cfg.Journal))
	e.settings = settings.NewStore(e.log, e.backend)
	e.unbind = append(e.unbind,
		e.journal.Bind(ctx, e.session),
		e.settings.Bind(ctx, e.session),
	)

	if e.opts.Model != nil {
		e.companion = companion.New(e.log, e.opts.Model)
	} else {
		e.companion = app.NewCompanion(e.log, cfg.AI)
	}

	id, ok, err := device.LoadSession()
	if err != nil {
		return err
	}
	if ok {
		return e.session.Login(ctx, id)
	}
	return nil
}

func (e *env) close() error {
	for _, fn := range e.unbind {
		fn()
	}
	e.unbind = nil

	var errs []error
	if e.backend != nil {
		errs = append(errs, e.backend.Close())
	}
	if e.device != nil && adapter.Backend(e.device) != e.backend {
		errs = append(errs, e.device.Close())
	}
	e.backend, e.device = nil, nil
	return errors.Join(errs...)
}

// errNotLoggedIn wraps domain.ErrIdentityMissing with a hint for the user.
var errNotLoggedIn = fmt.Errorf("no active identity, run `howzue login <email>` or `howzue login --guest`: %w", domain.ErrIdentityMissing)

// active returns the active identity and reports a failed initial load.
func (e *env) active(cmd *cobra.Command) (domain.Identity, error) {
	id, ok := e.session.Current()
	if !ok {
		return "", errNotLoggedIn
	}
	if err := e.journal.Snapshot().LoadErr; err != nil {
		warn(cmd.ErrOrStderr(), "entries could not be loaded: %v", err)
	}
	if err := e.settings.Snapshot().LoadErr; err != nil {
		warn(cmd.ErrOrStderr(), "settings could not be loaded: %v", err)
	}
	return id, nil
}
