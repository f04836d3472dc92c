package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/annobridge/internal/component"
	"github.com/vk/annobridge/internal/config"
	"github.com/vk/annobridge/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// writeConfig drops HCL content into a fresh temp dir and returns the file path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
		bridge {
			mode        = "release"
			listen      = "0.0.0.0:9000"
			session_cap = 64
		}

		component "ner_span_renderer" {
			dev_url   = "http://localhost:3001"
			asset_dir = "frontend/build"
		}
	`)

	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)

	require.Equal(t, component.ModeRelease, model.Bridge.Mode)
	require.Equal(t, "0.0.0.0:9000", model.Bridge.Listen)
	require.Equal(t, 64, model.Bridge.SessionCap)

	def, ok := model.Components["ner_span_renderer"]
	require.True(t, ok)
	require.Equal(t, "http://localhost:3001", def.DevURL)
	require.Equal(t, filepath.Join(filepath.Dir(path), "frontend/build"), def.AssetDir,
		"relative asset_dir resolves against the declaring file")
}

func TestLoad_DefaultsApply(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
		component "ner_span_renderer" {
			dev_url = "http://localhost:3001"
		}
	`)

	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)

	require.Equal(t, component.ModeDevelopment, model.Bridge.Mode)
	require.Equal(t, config.DefaultListen, model.Bridge.Listen)
	require.Zero(t, model.Bridge.SessionCap)
}

func TestLoad_AbsoluteAssetDirKept(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
		component "w" {
			asset_dir = "/opt/bundles/w"
		}
	`)

	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	require.Equal(t, "/opt/bundles/w", model.Components["w"].AssetDir)
}

func TestLoad_DirectoryDiscovery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_bridge.hcl"), []byte(`
		bridge {
			mode = "development"
		}
	`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_components.hcl"), []byte(`
		component "one" {
			dev_url = "http://localhost:1"
		}
		component "two" {
			dev_url = "http://localhost:2"
		}
	`), 0600))

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	require.Len(t, model.Components, 2)
}

func TestLoad_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		hcl         string
		errContains string
	}{
		{
			name: "invalid mode",
			hcl: `
				bridge {
					mode = "staging"
				}
			`,
			errContains: "invalid mode",
		},
		{
			name: "negative session cap",
			hcl: `
				bridge {
					session_cap = -1
				}
			`,
			errContains: "session_cap cannot be negative",
		},
		{
			name: "duplicate component",
			hcl: `
				component "w" {
					dev_url = "http://localhost:1"
				}
				component "w" {
					dev_url = "http://localhost:2"
				}
			`,
			errContains: `duplicate component "w"`,
		},
		{
			name: "syntax error",
			hcl: `
				component "w" {
					dev_url =
			`,
			errContains: "failed to parse",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tc.hcl)
			_, err := NewLoader().Load(testContext(), path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoad_DuplicateBridgeBlockAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	block := []byte("bridge {\n  mode = \"development\"\n}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), block, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), block, 0600))

	_, err := NewLoader().Load(testContext(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate bridge block")
}

func TestLoad_NoFilesFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(testContext(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no .hcl configuration files")
}
