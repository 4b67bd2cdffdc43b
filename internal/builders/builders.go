// Package builders holds the compiled Go side of a catalog: named builder
// functions that catalog manifests refer to by name. Builders are registered
// at startup by Module implementations and looked up during a scan, so the
// set of constructible types is fixed at compile time even though the catalog
// that exposes them is data.
package builders

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Func constructs a value from resolved named arguments.
type Func func(ctx context.Context, args map[string]any) (any, error)

// Module is implemented by packages that contribute builders to a Set.
type Module interface {
	Register(s *Set)
}

// Set is a named collection of builder functions for a single application
// instance.
type Set struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// New creates an empty Set.
func New() *Set {
	return &Set{funcs: make(map[string]Func)}
}

// Register adds a builder under name. Registering a nil builder or the same
// name twice is a programmer error and panics.
func (s *Set) Register(name string, fn Func) {
	if fn == nil {
		panic(fmt.Sprintf("builders: builder %q is nil", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.funcs[name]; exists {
		panic(fmt.Sprintf("builders: builder %q already registered", name))
	}
	slog.Debug("Registering builder.", "name", name)
	s.funcs[name] = fn
}

// Lookup returns the builder registered under name.
func (s *Set) Lookup(name string) (Func, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn, ok := s.funcs[name]
	return fn, ok
}

// Names returns the registered builder names, sorted.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
