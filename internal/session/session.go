// Package session tracks per-browser-session widget state on the host side:
// which component instances exist, and which values they have reported back.
package session

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/vk/annobridge/internal/opaque"
)

// Instance is a snapshot of one widget instance's identity and last reported
// value at the time it was derived.
type Instance struct {
	ID       string
	Value    opaque.Value
	HasValue bool
}

// Session holds the instance table for one frontend session. All methods are
// safe for concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	values   map[string]opaque.Value
	reported map[string]bool
	ordinals map[string]int
}

func newSession(id string) *Session {
	return &Session{
		ID:       id,
		values:   make(map[string]opaque.Value),
		reported: make(map[string]bool),
		ordinals: make(map[string]int),
	}
}

// BeginPass starts a new render pass. Call-order ordinals reset so that
// keyless instances keep a stable identity across re-invocations.
func (s *Session) BeginPass() {
	s.mu.Lock()
	s.ordinals = make(map[string]int)
	s.mu.Unlock()
}

// Instance derives the identity for one invocation of a component. An
// explicit key names the same logical instance across passes; without one,
// identity falls back to the call order within the current pass.
func (s *Session) Instance(componentName, key string) Instance {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	if key != "" {
		id = componentName + "/" + key
	} else {
		ordinal := s.ordinals[componentName]
		s.ordinals[componentName] = ordinal + 1
		id = componentName + "#" + strconv.Itoa(ordinal)
	}

	return Instance{
		ID:       id,
		Value:    s.values[id],
		HasValue: s.reported[id],
	}
}

// Report stores the value a frontend instance sent back. It returns an error
// for an unknown instance ID shape so transport bugs surface early; values
// themselves are stored without interpretation, null included.
func (s *Session) Report(instanceID string, value opaque.Value) error {
	if instanceID == "" {
		return fmt.Errorf("session %s: report with empty instance ID", s.ID)
	}
	s.mu.Lock()
	s.values[instanceID] = value
	s.reported[instanceID] = true
	s.mu.Unlock()
	return nil
}

// Value returns the last reported value for an instance, if any.
func (s *Session) Value(instanceID string) (opaque.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reported[instanceID] {
		return opaque.Null(), false
	}
	return s.values[instanceID], true
}
