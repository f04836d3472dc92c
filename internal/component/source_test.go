package component

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "development", want: ModeDevelopment},
		{in: "release", want: ModeRelease},
		{in: "  Release ", want: ModeRelease},
		{in: "production", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			mode, err := ParseMode(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, mode)
		})
	}
}

func TestDevServer_ProxiesToLiveServer(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dev bundle for " + r.URL.Path))
	}))
	defer backend.Close()

	handler, err := DevServer{URL: backend.URL}.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "dev bundle for /index.js", rec.Body.String())
}

func TestDevServer_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := DevServer{URL: "not a url"}.Handler()
	require.Error(t, err)

	_, err = DevServer{URL: "/relative/only"}.Handler()
	require.Error(t, err)
}

func TestAssetDir_ServesBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bundle.js"), []byte("console.log('spans')"), 0600))

	handler, err := AssetDir{Path: dir}.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bundle.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "console.log('spans')", rec.Body.String())
}

func TestAssetDir_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := AssetDir{Path: filepath.Join(t.TempDir(), "never-built")}.Handler()
	require.Error(t, err)
}

func TestAssetDir_FileInsteadOfDirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "bundle.js")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := AssetDir{Path: file}.Handler()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a directory")
}
