package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/annobridge/internal/bridge"
	"github.com/vk/annobridge/internal/component"
	"github.com/vk/annobridge/internal/ctxlog"
	"github.com/vk/annobridge/internal/opaque"
	"github.com/vk/annobridge/internal/session"
)

// NewBridge builds a bridge with a recording emitter and the given component
// names declared against a throwaway dev-server source.
func NewBridge(t *testing.T, componentNames ...string) (*bridge.Bridge, *RecordingEmitter) {
	t.Helper()

	registry := component.NewRegistry()
	for _, name := range componentNames {
		registry.Declare(name, component.DevServer{URL: "http://localhost:3001"})
	}

	sessions, err := session.NewStore(0)
	require.NoError(t, err)

	b := bridge.New(registry, sessions)
	emitter := NewRecordingEmitter()
	b.SetEmitter(emitter)
	return b, emitter
}

// Context returns a context carrying a discard logger, matching the wiring
// the app performs in production.
func Context(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// MustValue converts a Go value into the opaque envelope, failing the test on
// conversion errors.
func MustValue(t *testing.T, v any) opaque.Value {
	t.Helper()
	val, err := opaque.FromGo(v)
	require.NoError(t, err)
	return val
}
