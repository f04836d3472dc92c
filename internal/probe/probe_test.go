package probe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstanceFromRender(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data []any
		want string
	}{
		{
			name: "well-formed payload",
			data: []any{map[string]any{"instance": "ner_span_renderer/doc1", "fields": map[string]any{}}},
			want: "ner_span_renderer/doc1",
		},
		{name: "no arguments", data: nil, want: ""},
		{name: "missing instance field", data: []any{map[string]any{"component": "w"}}, want: ""},
		{name: "non-object payload", data: []any{"oops"}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, instanceFromRender(tc.data))
		})
	}
}
