package app

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/kilnhq/kiln/internal/registry"
)

// ListEntries writes the registry contents to the App's writer in
// registration order.
func (a *App) ListEntries(ctx context.Context) error {
	entries := a.registry.Entries()
	a.logger.Debug("Listing registry entries.", "count", len(entries))

	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLIBRARY\tLABEL")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Key, entry.Library, entry.Label)
	}
	return w.Flush()
}

// CreateInstance resolves one entry and constructs an instance from it. The
// App's logger rides along in the context so constructors log consistently.
func (a *App) CreateInstance(ctx context.Context, key string, opts *registry.Options, args registry.Args) (any, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	instance, err := a.registry.Create(ctx, key, opts, args)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Instance created.", "key", key, "type", fmt.Sprintf("%T", instance))
	return instance, nil
}
