// Package socketio provides a constructible socket.io client bound to one
// namespace. The client is built disconnected; Connect dials on demand.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/kilnhq/kiln/internal/builders"
	"github.com/kilnhq/kiln/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the builders.Module interface for this package.
type Module struct{}

// Client wraps a socket.io socket for one namespace.
type Client struct {
	URL       string
	Namespace string

	manager *socket.Manager
	io      *socket.Socket
}

// Connect dials the server and waits for the initial connect event, the
// first connect error, or the timeout.
func (c *Client) Connect(ctx context.Context, timeout time.Duration) error {
	logger := ctxlog.FromContext(ctx).With("url", c.URL, "namespace", c.Namespace)

	done := make(chan error, 1)
	c.io.On(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected.", "sid", c.io.Id())
		done <- nil
	})
	c.io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- err
				return
			}
		}
		done <- fmt.Errorf("socketio: connect error")
	})

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.io.Connect()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("socketio: timed out waiting for initial connection to %s", c.URL)
	case err := <-done:
		return err
	}
}

// Emit sends an event with the given payload.
func (c *Client) Emit(event string, data ...any) error {
	return c.io.Emit(event, data...)
}

// On registers a handler for a named event.
func (c *Client) On(event string, handler func(...any)) error {
	return c.io.On(types.EventName(event), handler)
}

// Close disconnects the underlying socket.
func (c *Client) Close() {
	c.io.Disconnect()
}

// NewSocketIOClient is the builder for the SocketIOClient catalog class.
// Arguments: "url" (required), "namespace", "insecure_skip_verify".
func NewSocketIOClient(ctx context.Context, args map[string]any) (any, error) {
	logger := ctxlog.FromContext(ctx)

	rawURL, ok := args["url"].(string)
	if !ok || rawURL == "" {
		return nil, fmt.Errorf("socketio: url must be a non-empty string")
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("socketio: failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("socketio: URL %q must include a scheme and host", rawURL)
	}

	namespace := "/"
	if v, ok := args["namespace"].(string); ok && v != "" {
		namespace = v
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	if skip, ok := args["insecure_skip_verify"].(bool); ok && skip {
		logger.Warn("Skipping TLS certificate verification.", "url", rawURL)
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	return &Client{
		URL:       rawURL,
		Namespace: namespace,
		manager:   manager,
		io:        io,
	}, nil
}

// Register registers this package's builders.
func (m *Module) Register(s *builders.Set) {
	s.Register("NewSocketIOClient", NewSocketIOClient)
}
