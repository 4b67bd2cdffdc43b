// Package printer provides a constructible value sink that writes formatted
// key/value pairs to a writer.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/kilnhq/kiln/internal/builders"
)

// Module implements the builders.Module interface for this package.
type Module struct{}

// Printer writes named values to its output, one per line, prefixed.
type Printer struct {
	Prefix string
	out    io.Writer
}

// NewWithWriter builds a Printer with an explicit output. Used by tests and
// by callers that do not want stdout.
func NewWithWriter(prefix string, out io.Writer) *Printer {
	return &Printer{Prefix: prefix, out: out}
}

// Print writes the values sorted by key for consistent output.
func (p *Printer) Print(values map[string]any) {
	if values == nil {
		fmt.Fprintf(p.out, "%s(null)\n", p.Prefix)
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(p.out, "%s%s = %v\n", p.Prefix, k, values[k])
	}
}

// NewPrinter is the builder for the Printer catalog class. It accepts an
// optional "prefix" argument.
func NewPrinter(ctx context.Context, args map[string]any) (any, error) {
	p := &Printer{out: os.Stdout}
	if v, ok := args["prefix"]; ok {
		prefix, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("printer: prefix must be a string, got %T", v)
		}
		p.Prefix = prefix
	}
	return p, nil
}

// Register registers this package's builders.
func (m *Module) Register(s *builders.Set) {
	s.Register("NewPrinter", NewPrinter)
}
