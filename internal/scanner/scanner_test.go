package scanner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kilnhq/kiln/internal/builders"
	"github.com/kilnhq/kiln/internal/registry"
	"github.com/kilnhq/kiln/internal/scanner"
	"github.com/kilnhq/kiln/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moduleFunc adapts a function to the builders.Module interface for tests.
type moduleFunc func(s *builders.Set)

func (f moduleFunc) Register(s *builders.Set) { f(s) }

// widgetModule registers builders that record the args they were called with.
func widgetModule(calls *[]map[string]any) builders.Module {
	record := func(name string) builders.Func {
		return func(ctx context.Context, args map[string]any) (any, error) {
			if calls != nil {
				*calls = append(*calls, args)
			}
			return name, nil
		}
	}
	return moduleFunc(func(s *builders.Set) {
		s.Register("NewWidget", record("widget"))
		s.Register("NewGadget", record("gadget"))
	})
}

const widgetManifest = `
class "ClassA" {
  builder = "NewWidget"
}
`

const gadgetManifest = `
class "ClassB" {
  builder = "NewGadget"
}
`

func TestScanRegistersNestedNamespacesUnderOneLibrary(t *testing.T) {
	result := testutil.RunScan(t, map[string]string{
		"top.hcl":        widgetManifest,
		"sub/nested.hcl": gadgetManifest,
	}, scanner.Options{Library: "mylib"}, widgetModule(nil))
	require.NoError(t, result.Err)

	entries := result.Registry.Entries()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "mylib", entry.Library)
		assert.Equal(t, registry.DefaultTag, entry.Label)
	}
	assert.Equal(t, []string{"classa", "classb"}, result.Registry.Keys())

	instance, err := result.Registry.Create(context.Background(), "ClassB", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gadget", instance)
}

func TestScanInfersNamespaceAndLibraryFromRoot(t *testing.T) {
	root := testutil.WriteCatalog(t, map[string]string{
		"mycatalog/top.hcl": widgetManifest,
	})

	reg := registry.New()
	set := builders.New()
	widgetModule(nil).Register(set)

	err := scanner.Scan(context.Background(), reg, set, scanner.Options{
		Root: filepath.Join(root, "mycatalog"),
	})
	require.NoError(t, err)

	entries := reg.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "mycatalog", entries[0].Library)
}

func TestScanDefaultsRootToCallerDirectory(t *testing.T) {
	// This package directory contains no manifests, so the scan registers
	// nothing but still resolves the caller's location without error.
	reg := registry.New()
	err := scanner.Scan(context.Background(), reg, builders.New(), scanner.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestScanSkipsPrivateClassesAndDirectories(t *testing.T) {
	result := testutil.RunScan(t, map[string]string{
		"top.hcl": `
class "ClassA" {
  builder = "NewWidget"
}

class "_Hidden" {
  builder = "NewWidget"
}
`,
		"_private/skipme.hcl": gadgetManifest,
	}, scanner.Options{Library: "mylib"}, widgetModule(nil))
	require.NoError(t, result.Err)

	assert.Equal(t, []string{"classa"}, result.Registry.Keys())
	assert.Contains(t, result.LogOutput, "Skipping private class")
}

func TestScanLabelPropagatesUnchanged(t *testing.T) {
	result := testutil.RunScan(t, map[string]string{
		"top.hcl":        widgetManifest,
		"sub/nested.hcl": gadgetManifest,
	}, scanner.Options{Library: "mylib", Label: "Patched"}, widgetModule(nil))
	require.NoError(t, result.Err)

	for _, entry := range result.Registry.Entries() {
		assert.Equal(t, "patched", entry.Label)
	}
}

func TestScanUnknownBuilderAbortsButKeepsEarlierEntries(t *testing.T) {
	// Files scan in lexical order, so a_ok.hcl registers before z_bad.hcl fails.
	result := testutil.RunScan(t, map[string]string{
		"a_ok.hcl": widgetManifest,
		"z_bad.hcl": `
class "Broken" {
  builder = "NoSuchBuilder"
}
`,
	}, scanner.Options{Library: "mylib"}, widgetModule(nil))

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, scanner.ErrScanFailed)

	var scanErr *scanner.ScanError
	require.ErrorAs(t, result.Err, &scanErr)
	assert.Contains(t, scanErr.Path, "z_bad.hcl")
	assert.Contains(t, scanErr.Error(), "NoSuchBuilder")

	// Failure is logged before propagation.
	assert.Contains(t, result.LogOutput, "Catalog scan failed")

	// Entries from the sibling scanned before the failure remain queryable.
	assert.Equal(t, []string{"classa"}, result.Registry.Keys())
	_, err := result.Registry.Create(context.Background(), "classa", nil, nil)
	assert.NoError(t, err)
}

func TestScanParseFailureSurfacesScanError(t *testing.T) {
	result := testutil.RunScan(t, map[string]string{
		"bad.hcl": `class "Broken" {`,
	}, scanner.Options{Library: "mylib"}, widgetModule(nil))

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, scanner.ErrScanFailed)

	var scanErr *scanner.ScanError
	require.ErrorAs(t, result.Err, &scanErr)
	assert.Contains(t, scanErr.Path, "bad.hcl")
}

func TestScanMissingRootSurfacesScanError(t *testing.T) {
	reg := registry.New()
	err := scanner.Scan(context.Background(), reg, builders.New(), scanner.Options{
		Root: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scanner.ErrScanFailed)
}

func TestScannedConstructorAppliesManifestDefaultsAndTypes(t *testing.T) {
	var calls []map[string]any
	result := testutil.RunScan(t, map[string]string{
		"widget.hcl": `
class "ClassA" {
  builder = "NewWidget"

  input "host" {
    type    = string
    default = "localhost"
  }

  input "port" {
    type = number
  }
}
`,
	}, scanner.Options{Library: "mylib"}, widgetModule(&calls))
	require.NoError(t, result.Err)

	ctx := context.Background()

	// The default fills the absent host; the string port converts to number.
	_, err := result.Registry.Create(ctx, "classa", nil, registry.Args{"port": "8080"})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "localhost", calls[0]["host"])
	assert.Equal(t, int64(8080), calls[0]["port"])

	// A missing required input fails before the builder runs.
	_, err = result.Registry.Create(ctx, "classa", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required argument "port"`)
	assert.Len(t, calls, 1)
}

func TestRescanIsIdempotent(t *testing.T) {
	files := map[string]string{"top.hcl": widgetManifest}
	root := testutil.WriteCatalog(t, files)

	set := builders.New()
	widgetModule(nil).Register(set)
	reg := registry.New()

	opts := scanner.Options{Root: root, Library: "mylib"}
	require.NoError(t, scanner.Scan(context.Background(), reg, set, opts))
	require.NoError(t, scanner.Scan(context.Background(), reg, set, opts))

	assert.Equal(t, 1, reg.Len())
}
