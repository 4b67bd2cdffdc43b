// Package testutil provides a shared harness for scanner and app tests: it
// materializes catalog trees in temp directories and captures log output.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kilnhq/kiln/internal/builders"
	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/kilnhq/kiln/internal/registry"
	"github.com/kilnhq/kiln/internal/scanner"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteCatalog writes the given relative-path to content map under a fresh
// temp directory and returns its root. Subdirectories in the relative paths
// become nested namespaces.
func WriteCatalog(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// ScanResult holds the outcomes of a harness scan.
type ScanResult struct {
	LogOutput string
	Err       error
	Registry  *registry.Registry
}

// RunScan materializes the files as a catalog tree, registers the given
// modules' builders, and scans the tree into a fresh registry. opts.Root is
// overridden with the temp directory.
func RunScan(t *testing.T, files map[string]string, opts scanner.Options, mods ...builders.Module) *ScanResult {
	t.Helper()

	root := WriteCatalog(t, files)
	opts.Root = root

	set := builders.New()
	for _, mod := range mods {
		mod.Register(set)
	}

	logBuf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	reg := registry.New()
	err := scanner.Scan(ctx, reg, set, opts)

	return &ScanResult{
		LogOutput: logBuf.String(),
		Err:       err,
		Registry:  reg,
	}
}
