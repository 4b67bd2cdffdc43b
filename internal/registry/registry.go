package registry

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/kilnhq/kiln/internal/ctxlog"
)

// DefaultTag is stored for the library and label dimensions when a
// registration does not supply them.
const DefaultTag = "none"

// Args carries the named constructor arguments for a single Create call.
type Args map[string]any

// Constructor produces a configured instance from named arguments.
type Constructor func(ctx context.Context, args Args) (any, error)

// Options qualifies a registration or lookup beyond the primary key. A zero
// value means "unspecified": at registration time unspecified dimensions are
// stored as DefaultTag, at lookup time they simply do not filter.
type Options struct {
	Library string
	Label   string
}

// Entry is one registered (key, constructor, library, label) tuple. Key,
// Library and Label are always stored lowercase.
type Entry struct {
	Key         string
	Library     string
	Label       string
	Constructor Constructor
}

// Registry is an ordered, append-only collection of entries for a single
// application instance. It is safe for concurrent use, though the intended
// pattern is to finish all scanning before concurrent Create calls begin.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register adds an entry under the given key. Absent library and label
// default to DefaultTag. Registering an entry identical in all four
// dimensions to an existing one is a no-op. A nil constructor is a
// programmer error and panics.
func (r *Registry) Register(key string, ctor Constructor, opts *Options) {
	if ctor == nil {
		panic("registry: constructor must not be nil")
	}
	if opts == nil {
		opts = &Options{}
	}

	entry := Entry{
		Key:         strings.ToLower(key),
		Library:     normalizeTag(opts.Library),
		Label:       normalizeTag(opts.Label),
		Constructor: ctor,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if sameEntry(existing, entry) {
			return
		}
	}
	r.entries = append(r.entries, entry)
}

// Create resolves a single entry and invokes its constructor with args.
//
// Filters apply progressively so that the returned error names the dimension
// that failed: entries are narrowed by key, then by library if supplied, then
// by label if supplied. Zero survivors yield UnknownKeyError,
// UnknownLibraryError or UnknownLabelError respectively; more than one yields
// AmbiguousEntryError with the surviving count and the filters used.
func (r *Registry) Create(ctx context.Context, key string, opts *Options, args Args) (any, error) {
	if opts == nil {
		opts = &Options{}
	}
	k := strings.ToLower(key)
	library := strings.ToLower(opts.Library)
	label := strings.ToLower(opts.Label)

	r.mu.RLock()
	candidates := make([]Entry, 0, 1)
	for _, entry := range r.entries {
		if entry.Key == k {
			candidates = append(candidates, entry)
		}
	}
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return nil, &UnknownKeyError{Key: k}
	}

	if library != "" {
		candidates = filterEntries(candidates, func(e Entry) bool { return e.Library == library })
		if len(candidates) == 0 {
			return nil, &UnknownLibraryError{Key: k, Library: library}
		}
	}

	if label != "" {
		candidates = filterEntries(candidates, func(e Entry) bool { return e.Label == label })
		if len(candidates) == 0 {
			return nil, &UnknownLabelError{Key: k, Library: library, Label: label}
		}
	}

	if len(candidates) > 1 {
		return nil, &AmbiguousEntryError{Key: k, Library: library, Label: label, Count: len(candidates)}
	}

	entry := candidates[0]
	ctxlog.FromContext(ctx).Debug("Creating instance from registry entry.",
		"key", entry.Key, "library", entry.Library, "label", entry.Label)
	return entry.Constructor(ctx, args)
}

// Len reports the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns a snapshot of all entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Keys returns the distinct registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.entries))
	keys := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		if _, ok := seen[entry.Key]; ok {
			continue
		}
		seen[entry.Key] = struct{}{}
		keys = append(keys, entry.Key)
	}
	sort.Strings(keys)
	return keys
}

func normalizeTag(tag string) string {
	if tag == "" {
		return DefaultTag
	}
	return strings.ToLower(tag)
}

// sameEntry compares all four dimensions. Constructors are functions, so
// identity is the code pointer of the function value; closures made from the
// same literal compare equal, which keeps repeated scans idempotent.
func sameEntry(a, b Entry) bool {
	return a.Key == b.Key &&
		a.Library == b.Library &&
		a.Label == b.Label &&
		reflect.ValueOf(a.Constructor).Pointer() == reflect.ValueOf(b.Constructor).Pointer()
}

func filterEntries(entries []Entry, keep func(Entry) bool) []Entry {
	out := entries[:0]
	for _, entry := range entries {
		if keep(entry) {
			out = append(out, entry)
		}
	}
	return out
}
