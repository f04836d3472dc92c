package app

import (
	"context"

	"github.com/vk/annobridge/internal/ctxlog"
	"github.com/vk/annobridge/widgets/spanannotator"
)

// samplePass is the render callback the standalone binary registers. It
// drives the span annotator with a small document so a freshly connected
// frontend has something to render, and logs each value the widget reports.
func (a *App) samplePass(ctx context.Context, sessionID string) error {
	name := "demo"
	value, err := spanannotator.Render(ctx, a.bridge, sessionID, spanannotator.Args{
		Name:   &name,
		Tokens: []string{"Alice", "met", "Bob"},
		Spans: []spanannotator.Span{
			{StartToken: 0, EndToken: 0, Label: "PERSON"},
			{StartToken: 2, EndToken: 2, Label: "PERSON"},
		},
		Key:     "doc1",
		Default: 0,
	})
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Annotation value", "session", sessionID, "value", value.String())
	return nil
}
