package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/kilnhq/kiln/internal/builders"
	"github.com/kilnhq/kiln/internal/catalog"
	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/kilnhq/kiln/internal/fsutil"
	"github.com/kilnhq/kiln/internal/hclcat"
	"github.com/kilnhq/kiln/internal/registry"
)

// manifestExt is the file extension of catalog manifests.
const manifestExt = ".hcl"

// ErrScanFailed is the sentinel wrapped by every ScanError.
var ErrScanFailed = errors.New("catalog scan failed")

// ScanError reports that loading a discovered unit failed. It carries the
// location being scanned and wraps the underlying cause.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() []error {
	return []error{ErrScanFailed, e.Err}
}

// Options control a scan. The zero value scans the directory containing the
// calling source file.
type Options struct {
	// Root is the directory tree to walk. Empty means the directory of the
	// caller's source file.
	Root string

	// Namespace is the logical name of the tree. Empty means the base name
	// of Root.
	Namespace string

	// Library tags every entry the scan registers. Empty means Namespace.
	Library string

	// Label tags every entry the scan registers. Optional.
	Label string
}

// Scan walks the catalog tree depth-first and registers every public class it
// discovers into reg, binding each class to its builder from set. Files at a
// level are scanned before subdirectories; subdirectories recurse under the
// dotted child namespace with library and label unchanged.
//
// The first unit that fails to load aborts the scan with a ScanError. Entries
// registered before the failure remain in reg.
func Scan(ctx context.Context, reg *registry.Registry, set *builders.Set, opts Options) error {
	root := opts.Root
	if root == "" {
		dir, err := callerDir()
		if err != nil {
			return &ScanError{Path: "<caller>", Err: err}
		}
		root = dir
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = filepath.Base(filepath.Clean(root))
	}
	library := opts.Library
	if library == "" {
		library = namespace
	}

	logger := ctxlog.FromContext(ctx).With("scan_id", uuid.NewString(), "root", root)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Catalog scan started.", "namespace", namespace, "library", library, "label", opts.Label)

	s := &scan{
		reg:     reg,
		set:     set,
		loader:  hclcat.NewLoader(),
		library: library,
		label:   opts.Label,
	}
	if err := s.dir(ctx, root, namespace); err != nil {
		logger.Error("Catalog scan failed.", "error", err)
		return err
	}

	logger.Debug("Catalog scan finished.", "entries", reg.Len())
	return nil
}

// scan holds the per-invocation traversal parameters.
type scan struct {
	reg     *registry.Registry
	set     *builders.Set
	loader  *hclcat.Loader
	library string
	label   string
}

func (s *scan) dir(ctx context.Context, dir, namespace string) error {
	logger := ctxlog.FromContext(ctx)

	units, packages, err := fsutil.ListNamespace(dir, manifestExt)
	if err != nil {
		return &ScanError{Path: dir, Err: err}
	}
	if len(units) == 0 && len(packages) == 0 {
		logger.Warn("Namespace contains no catalog manifests.", "dir", dir, "namespace", namespace)
	}

	for _, name := range units {
		path := filepath.Join(dir, name)
		unit, err := s.loader.LoadFile(ctx, path)
		if err != nil {
			return &ScanError{Path: path, Err: err}
		}
		if err := s.registerUnit(ctx, unit, namespace); err != nil {
			return err
		}
	}

	for _, name := range packages {
		if err := s.dir(ctx, filepath.Join(dir, name), namespace+"."+name); err != nil {
			return err
		}
	}
	return nil
}

func (s *scan) registerUnit(ctx context.Context, unit *catalog.Unit, namespace string) error {
	logger := ctxlog.FromContext(ctx)

	for _, class := range unit.Classes {
		if strings.HasPrefix(class.Name, "_") {
			logger.Debug("Skipping private class.", "class", class.Name, "file", unit.Path)
			continue
		}

		build, ok := s.set.Lookup(class.Builder)
		if !ok {
			return &ScanError{
				Path: unit.Path,
				Err:  fmt.Errorf("class %q refers to unknown builder %q", class.Name, class.Builder),
			}
		}

		s.reg.Register(class.Name, bindConstructor(class, build), &registry.Options{
			Library: s.library,
			Label:   s.label,
		})
		logger.Debug("Registered class.",
			"key", strings.ToLower(class.Name), "builder", class.Builder, "namespace", namespace)
	}
	return nil
}

// bindConstructor closes over a class definition so that every Create call
// sees the manifest's defaults and type conversions before the builder runs.
func bindConstructor(class *catalog.ClassDefinition, build builders.Func) registry.Constructor {
	return func(ctx context.Context, args registry.Args) (any, error) {
		resolved, err := catalog.ResolveArgs(class.Inputs, args)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", class.Name, err)
		}
		return build(ctx, resolved)
	}
}

// callerDir resolves the directory of the source file that called Scan.
func callerDir() (string, error) {
	// Two frames up: callerDir, Scan, caller.
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		return "", errors.New("cannot determine caller source location")
	}
	return filepath.Dir(file), nil
}
