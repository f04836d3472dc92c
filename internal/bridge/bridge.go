package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/annobridge/internal/component"
	"github.com/vk/annobridge/internal/ctxlog"
	"github.com/vk/annobridge/internal/opaque"
	"github.com/vk/annobridge/internal/session"
)

// Emitter delivers render payloads to a connected frontend session. It
// reports false when no frontend is attached, which is not an error: the
// invocation still resolves to the stored or default value.
type Emitter interface {
	EmitRender(sessionID string, payload RenderPayload) bool
}

// RenderFunc is the backend render callback the host re-invokes once per
// interaction: on session connect and after every reported value.
type RenderFunc func(ctx context.Context, sessionID string) error

// Invocation carries one call through the component-invocation channel.
// Fields are the named values forwarded verbatim to the frontend; Key is the
// optional identity of the instance; Default is returned until the instance
// reports a value.
type Invocation struct {
	Component string
	Key       string
	Fields    map[string]any
	Default   opaque.Value
}

// Bridge routes invocations to declared components and value reports back to
// their session state.
type Bridge struct {
	registry *component.Registry
	sessions *session.Store

	mu       sync.RWMutex
	emitter  Emitter
	renderFn RenderFunc
}

// New creates a bridge over the given registry and session store.
func New(registry *component.Registry, sessions *session.Store) *Bridge {
	return &Bridge{
		registry: registry,
		sessions: sessions,
	}
}

// SetEmitter attaches the transport that delivers render events. Called once
// by the channel during startup.
func (b *Bridge) SetEmitter(e Emitter) {
	b.mu.Lock()
	b.emitter = e
	b.mu.Unlock()
}

// OnRender registers the backend render callback.
func (b *Bridge) OnRender(fn RenderFunc) {
	b.mu.Lock()
	b.renderFn = fn
	b.mu.Unlock()
}

// Sessions exposes the session store, primarily for tests and the app layer.
func (b *Bridge) Sessions() *session.Store {
	return b.sessions
}

// Invoke performs one round through the invocation channel: derive the
// instance identity, forward the named fields to the frontend when one is
// attached, and return the instance's reported value, or the default when
// nothing has been reported yet. Failures propagate unmodified; nothing is
// retried or recovered here.
func (b *Bridge) Invoke(ctx context.Context, sessionID string, inv Invocation) (opaque.Value, error) {
	logger := ctxlog.FromContext(ctx).With("component", inv.Component, "session", sessionID)

	decl, ok := b.registry.Lookup(inv.Component)
	if !ok {
		return opaque.Null(), fmt.Errorf("unknown component %q", inv.Component)
	}

	sess := b.sessions.Ensure(sessionID)
	inst := sess.Instance(inv.Component, inv.Key)

	payload := RenderPayload{
		Component: decl.Name,
		Instance:  inst.ID,
		Fields:    inv.Fields,
		Default:   inv.Default,
	}

	b.mu.RLock()
	emitter := b.emitter
	b.mu.RUnlock()

	if emitter != nil {
		if !emitter.EmitRender(sess.ID, payload) {
			logger.Debug("No frontend attached, returning without emit.", "instance", inst.ID)
		}
	}

	if inst.HasValue {
		logger.Debug("Returning reported value.", "instance", inst.ID)
		return inst.Value, nil
	}
	logger.Debug("No value reported yet, returning default.", "instance", inst.ID)
	return inv.Default, nil
}

// Report stores a value sent back by a frontend instance and re-runs the
// render callback, completing the host's refresh cycle for that session.
func (b *Bridge) Report(ctx context.Context, sessionID, instanceID string, value opaque.Value) error {
	sess, ok := b.sessions.Get(sessionID)
	if !ok {
		return fmt.Errorf("report for unknown session %q", sessionID)
	}
	if err := sess.Report(instanceID, value); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Component value stored.", "session", sessionID, "instance", instanceID)
	return b.RunPass(ctx, sessionID)
}

// RunPass executes one render pass for a session: reset call-order identity,
// then invoke the registered render callback, if any.
func (b *Bridge) RunPass(ctx context.Context, sessionID string) error {
	sess := b.sessions.Ensure(sessionID)
	sess.BeginPass()

	b.mu.RLock()
	fn := b.renderFn
	b.mu.RUnlock()

	if fn == nil {
		return nil
	}
	return fn(ctx, sess.ID)
}
