// Package testutil provides shared helpers for exercising the bridge without
// a real socket transport.
package testutil

import (
	"sync"

	"github.com/vk/annobridge/internal/bridge"
)

// RecordingEmitter captures render payloads instead of delivering them to a
// frontend. Attached defaults to true so emits are recorded; set it to false
// to simulate a session with no connected frontend.
type RecordingEmitter struct {
	mu       sync.Mutex
	payloads []bridge.RenderPayload
	sessions []string

	Attached bool
}

// NewRecordingEmitter creates an emitter that records every render.
func NewRecordingEmitter() *RecordingEmitter {
	return &RecordingEmitter{Attached: true}
}

// EmitRender implements bridge.Emitter.
func (e *RecordingEmitter) EmitRender(sessionID string, payload bridge.RenderPayload) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.Attached {
		return false
	}
	e.payloads = append(e.payloads, payload)
	e.sessions = append(e.sessions, sessionID)
	return true
}

// Payloads returns a copy of everything recorded so far.
func (e *RecordingEmitter) Payloads() []bridge.RenderPayload {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]bridge.RenderPayload, len(e.payloads))
	copy(out, e.payloads)
	return out
}

// Last returns the most recent payload, if any.
func (e *RecordingEmitter) Last() (bridge.RenderPayload, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.payloads) == 0 {
		return bridge.RenderPayload{}, false
	}
	return e.payloads[len(e.payloads)-1], true
}

// Sessions returns the session IDs the payloads were emitted to, in order.
func (e *RecordingEmitter) Sessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.sessions))
	copy(out, e.sessions)
	return out
}
