// Package app is the application context: one backend, one item store, one
// event bus and, once a UI attaches, one presenter.
package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tickbox/internal/config"
	"github.com/idilsaglam/tickbox/internal/event"
	"github.com/idilsaglam/tickbox/internal/presenter"
	"github.com/idilsaglam/tickbox/internal/store"
	"github.com/idilsaglam/tickbox/internal/store/jsonstore"
	"github.com/idilsaglam/tickbox/internal/store/memstore"
	"github.com/idilsaglam/tickbox/internal/store/sqlitestore"
)

// App owns everything a UI layer needs. Build one per process with Open.
type App struct {
	Config *config.Config
	Store  *store.Store

	backend   store.Backend
	bus       *event.Bus
	presenter *presenter.Presenter
	logger    *log.Logger
}

// Open builds the configured backend and loads the item store from it.
func Open(cfg *config.Config, logger *log.Logger) (*App, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg, backend, logger)
}

// New builds an App over an existing backend.
func New(cfg *config.Config, backend store.Backend, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s, err := store.Open(backend, cfg.Key, store.WithLogger(logger))
	if err != nil {
		closeBackend(backend)
		return nil, err
	}
	logger.Info("store ready", "backend", cfg.Backend, "key", s.Key(), "items", s.Len())
	return &App{
		Config:  cfg,
		Store:   s,
		backend: backend,
		bus:     event.NewBus(),
		logger:  logger,
	}, nil
}

// OpenBackend returns the key/value backend named by cfg.Backend.
func OpenBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		s, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(filepath.Join(cfg.DataDir, sqlitestore.FileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		return memstore.New(nil), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Attach creates the presenter for view. Only one view may be attached.
func (a *App) Attach(view presenter.View) (*presenter.Presenter, error) {
	if a.presenter != nil {
		return nil, errors.New("a view is already attached")
	}
	a.presenter = presenter.New(a.Store, view, a.bus)
	return a.presenter, nil
}

// Bus returns the bus UI layers publish their events on.
func (a *App) Bus() *event.Bus { return a.bus }

// Logger returns the application logger.
func (a *App) Logger() *log.Logger { return a.logger }

// Close disposes the presenter and releases the backend.
func (a *App) Close() error {
	if a.presenter != nil {
		a.presenter.Dispose()
		a.presenter = nil
	}
	return closeBackend(a.backend)
}

func closeBackend(b store.Backend) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
