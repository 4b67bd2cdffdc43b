package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kilnhq/kiln/internal/builders"
	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/kilnhq/kiln/internal/registry"
	"github.com/kilnhq/kiln/internal/scanner"
)

// App encapsulates one application instance: its logger, its builder set, and
// the registry populated from the configured catalog tree.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	builders *builders.Set
	registry *registry.Registry
}

// New builds an App with an isolated logger, registers all Go modules'
// builders, and scans the configured catalog tree into a fresh registry. When
// no modules are given, the compiled-in core modules are used.
func New(ctx context.Context, outW io.Writer, cfg *Config, modules ...builders.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	set := builders.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(set)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "builders", set.Names())

	reg := registry.New()
	err := scanner.Scan(ctx, reg, set, scanner.Options{
		Root:      cfg.CatalogPath,
		Namespace: cfg.Namespace,
		Library:   cfg.Library,
		Label:     cfg.Label,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to populate registry: %w", err)
	}
	logger.Debug("Registry populated.", "entries", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		builders: set,
		registry: reg,
	}, nil
}

// Registry returns the application's populated registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Builders returns the application's builder set. This is primarily for
// testing.
func (a *App) Builders() *builders.Set {
	return a.builders
}
