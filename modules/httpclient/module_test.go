package httpclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	instance, err := NewHTTPClient(context.Background(), nil)
	require.NoError(t, err)

	client, ok := instance.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, client.Timeout)
}

func TestNewHTTPClientCustomTimeout(t *testing.T) {
	instance, err := NewHTTPClient(context.Background(), map[string]any{"timeout": "5s"})
	require.NoError(t, err)

	client := instance.(*http.Client)
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestNewHTTPClientInvalidTimeout(t *testing.T) {
	_, err := NewHTTPClient(context.Background(), map[string]any{"timeout": "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestNewHTTPClientNonStringTimeout(t *testing.T) {
	_, err := NewHTTPClient(context.Background(), map[string]any{"timeout": 5})
	assert.Error(t, err)
}
