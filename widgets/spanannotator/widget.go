// Package spanannotator binds the ner_span_renderer frontend component: a
// browser-side widget that renders a token sequence with labeled span
// highlights and reports interaction results back to the caller.
package spanannotator

import (
	"context"
	"fmt"

	"github.com/vk/annobridge/internal/bridge"
	"github.com/vk/annobridge/internal/component"
	"github.com/vk/annobridge/internal/opaque"
)

// ComponentName is the name the frontend component is declared under.
const ComponentName = "ner_span_renderer"

// Span identifies a labeled range over the token sequence by start and end
// token indices, both inclusive. Spans may overlap; overlap resolution is
// owned by the frontend, not this bridge.
type Span struct {
	StartToken int    `json:"start_token"`
	EndToken   int    `json:"end_token"`
	Label      string `json:"label"`
}

// Args are the five named values forwarded to the frontend. Nil Name, Tokens
// or Spans and an empty Key are forwarded as explicit nulls, never as empty
// containers. Default may be any JSON-encodable value and is returned until
// the widget reports one of its own.
type Args struct {
	Name    *string
	Tokens  []string
	Spans   []Span
	Key     string
	Default any
}

// Invoker is the slice of the bridge the widget needs. *bridge.Bridge
// satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, sessionID string, inv bridge.Invocation) (opaque.Value, error)
}

// Widget declares the span annotator component with a registry.
type Widget struct {
	// Source resolves the frontend assets: a dev server in development
	// mode, a prebuilt bundle directory in release mode.
	Source component.Source
}

// Register implements the registrant interface the app wires widgets with.
func (w *Widget) Register(r *component.Registry) {
	r.Declare(ComponentName, w.Source)
}

// Render invokes the span annotator for one session, forwarding the five
// named values unchanged, and returns whatever the widget has reported, or
// the default until then. The span sequence order is preserved and its
// contents are not validated.
func Render(ctx context.Context, inv Invoker, sessionID string, args Args) (opaque.Value, error) {
	def, err := opaque.FromGo(args.Default)
	if err != nil {
		return opaque.Null(), fmt.Errorf("span annotator default value: %w", err)
	}

	fields := map[string]any{
		"name":   args.Name,
		"tokens": args.Tokens,
		"spans":  args.Spans,
		"key":    nil,
	}
	if args.Key != "" {
		fields["key"] = args.Key
	}

	return inv.Invoke(ctx, sessionID, bridge.Invocation{
		Component: ComponentName,
		Key:       args.Key,
		Fields:    fields,
		Default:   def,
	})
}
