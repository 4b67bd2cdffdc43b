// Package envsource provides a constructible configuration source backed by
// a snapshot of the process environment.
package envsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kilnhq/kiln/internal/builders"
)

// Module implements the builders.Module interface for this package.
type Module struct{}

// Source is an immutable snapshot of environment variables, optionally
// restricted to names sharing a prefix.
type Source struct {
	Prefix string
	values map[string]string
}

// Lookup returns the value recorded for name at construction time.
func (s *Source) Lookup(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// All returns a copy of the snapshot.
func (s *Source) All() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// NewEnvSource is the builder for the EnvSource catalog class. It accepts an
// optional "prefix" argument that filters which variables are captured.
func NewEnvSource(ctx context.Context, args map[string]any) (any, error) {
	src := &Source{values: make(map[string]string)}
	if v, ok := args["prefix"]; ok {
		prefix, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("envsource: prefix must be a string, got %T", v)
		}
		src.Prefix = prefix
	}

	for _, e := range os.Environ() {
		name, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		if src.Prefix != "" && !strings.HasPrefix(name, src.Prefix) {
			continue
		}
		src.values[name] = value
	}
	return src, nil
}

// Register registers this package's builders.
func (m *Module) Register(s *builders.Set) {
	s.Register("NewEnvSource", NewEnvSource)
}
