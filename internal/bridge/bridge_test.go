package bridge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/annobridge/internal/bridge"
	"github.com/vk/annobridge/internal/testutil"
)

func TestInvoke_ForwardsFieldsUnchanged(t *testing.T) {
	t.Parallel()

	b, emitter := testutil.NewBridge(t, "widget")
	ctx := testutil.Context(t)

	fields := map[string]any{
		"name":   "doc view",
		"tokens": []string{"Alice", "met", "Bob"},
		"spans": []map[string]any{
			{"start_token": 0, "end_token": 0, "label": "PERSON"},
			{"start_token": 2, "end_token": 2, "label": "PERSON"},
		},
		"key": "doc1",
	}

	_, err := b.Invoke(ctx, "sess", bridge.Invocation{
		Component: "widget",
		Key:       "doc1",
		Fields:    fields,
		Default:   testutil.MustValue(t, 0),
	})
	require.NoError(t, err)

	payload, ok := emitter.Last()
	require.True(t, ok)
	require.Equal(t, "widget", payload.Component)
	require.Equal(t, "widget/doc1", payload.Instance)
	require.Equal(t, fields, payload.Fields, "fields forward without transformation or reordering")
	require.Equal(t, []string{"sess"}, emitter.Sessions())
}

func TestInvoke_UnknownComponent(t *testing.T) {
	t.Parallel()

	b, _ := testutil.NewBridge(t, "widget")

	_, err := b.Invoke(testutil.Context(t), "sess", bridge.Invocation{Component: "ghost"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown component "ghost"`)
}

func TestInvoke_DefaultUntilReported(t *testing.T) {
	t.Parallel()

	b, _ := testutil.NewBridge(t, "widget")
	ctx := testutil.Context(t)
	def := testutil.MustValue(t, 0)

	inv := bridge.Invocation{Component: "widget", Key: "doc1", Default: def}

	got, err := b.Invoke(ctx, "sess", inv)
	require.NoError(t, err)
	require.True(t, got.Equal(def), "default comes back unchanged before any report")

	reported := testutil.MustValue(t, map[string]any{"selected_span": 1})
	require.NoError(t, b.Report(ctx, "sess", "widget/doc1", reported))

	got, err = b.Invoke(ctx, "sess", inv)
	require.NoError(t, err)
	require.True(t, got.Equal(reported), "identical re-invocations return the reported value")
}

func TestInvoke_ReportedNullBeatsDefault(t *testing.T) {
	t.Parallel()

	b, _ := testutil.NewBridge(t, "widget")
	ctx := testutil.Context(t)

	inv := bridge.Invocation{Component: "widget", Key: "doc1", Default: testutil.MustValue(t, 7)}
	_, err := b.Invoke(ctx, "sess", inv)
	require.NoError(t, err)

	require.NoError(t, b.Report(ctx, "sess", "widget/doc1", testutil.MustValue(t, nil)))

	got, err := b.Invoke(ctx, "sess", inv)
	require.NoError(t, err)
	require.True(t, got.IsNull(), "an explicit null report replaces the default")
}

func TestInvoke_NoEmitterStillResolves(t *testing.T) {
	t.Parallel()

	b, emitter := testutil.NewBridge(t, "widget")
	emitter.Attached = false

	def := testutil.MustValue(t, []any{})
	got, err := b.Invoke(testutil.Context(t), "sess", bridge.Invocation{Component: "widget", Default: def})
	require.NoError(t, err)
	require.True(t, got.Equal(def))
	require.Empty(t, emitter.Payloads())
}

func TestReport_UnknownSession(t *testing.T) {
	t.Parallel()

	b, _ := testutil.NewBridge(t, "widget")
	err := b.Report(testutil.Context(t), "never-seen", "widget/doc1", testutil.MustValue(t, 1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown session")
}

func TestReport_RerunsRenderCallback(t *testing.T) {
	t.Parallel()

	b, _ := testutil.NewBridge(t, "widget")
	ctx := testutil.Context(t)

	var passes int
	b.OnRender(func(ctx context.Context, sessionID string) error {
		passes++
		require.Equal(t, "sess", sessionID)
		_, err := b.Invoke(ctx, sessionID, bridge.Invocation{Component: "widget", Key: "doc1"})
		return err
	})

	require.NoError(t, b.RunPass(ctx, "sess"))
	require.Equal(t, 1, passes)

	require.NoError(t, b.Report(ctx, "sess", "widget/doc1", testutil.MustValue(t, true)))
	require.Equal(t, 2, passes, "a reported value triggers one more render pass")
}

func TestRunPass_ResetsCallOrderIdentity(t *testing.T) {
	t.Parallel()

	b, emitter := testutil.NewBridge(t, "widget")
	ctx := testutil.Context(t)

	pass := func() {
		_, err := b.Invoke(ctx, "sess", bridge.Invocation{Component: "widget"})
		require.NoError(t, err)
		_, err = b.Invoke(ctx, "sess", bridge.Invocation{Component: "widget"})
		require.NoError(t, err)
	}

	require.NoError(t, b.RunPass(ctx, "sess"))
	pass()
	require.NoError(t, b.RunPass(ctx, "sess"))
	pass()

	payloads := emitter.Payloads()
	require.Len(t, payloads, 4)
	require.Equal(t, payloads[0].Instance, payloads[2].Instance)
	require.Equal(t, payloads[1].Instance, payloads[3].Instance)
	require.NotEqual(t, payloads[0].Instance, payloads[1].Instance)
}
