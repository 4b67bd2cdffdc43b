// Package httpclient provides a constructible, pool-configured *http.Client.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kilnhq/kiln/internal/builders"
)

// Module implements the builders.Module interface for this package.
type Module struct{}

// NewHTTPClient is the builder for the HTTPClient catalog class. It accepts
// an optional "timeout" duration string; the catalog manifest supplies the
// default.
func NewHTTPClient(ctx context.Context, args map[string]any) (any, error) {
	timeout := 30 * time.Second
	if v, ok := args["timeout"]; ok {
		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("httpclient: timeout must be a duration string, got %T", v)
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("httpclient: invalid timeout %q: %w", raw, err)
		}
		timeout = parsed
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}, nil
}

// Register registers this package's builders.
func (m *Module) Register(s *builders.Set) {
	s.Register("NewHTTPClient", NewHTTPClient)
}
