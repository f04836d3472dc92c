package component

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"
)

// Mode selects one of the two fixed asset-resolution strategies. It is
// decided once at load time; callers cannot change it afterwards.
type Mode string

const (
	// ModeDevelopment reaches the component over a live local dev server.
	ModeDevelopment Mode = "development"
	// ModeRelease serves a prebuilt bundle from a local directory.
	ModeRelease Mode = "release"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDevelopment:
		return ModeDevelopment, nil
	case ModeRelease:
		return ModeRelease, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be 'development' or 'release'", s)
	}
}

// Source resolves a declared component's frontend assets to an HTTP handler.
// Implementations are immutable; the chosen strategy lives for the process
// lifetime.
type Source interface {
	// Handler returns the handler serving the component's assets.
	Handler() (http.Handler, error)
	// Describe returns a short human-readable location for logs.
	Describe() string
}

// DevServer proxies asset requests to a live development server, so the
// frontend can be iterated on without rebuilding its bundle.
type DevServer struct {
	URL string
}

// Handler returns a reverse proxy to the development server.
func (s DevServer) Handler() (http.Handler, error) {
	target, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid dev server URL %q: %w", s.URL, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("dev server URL %q must be absolute", s.URL)
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}

// Describe implements Source.
func (s DevServer) Describe() string {
	return "dev server " + s.URL
}

// AssetDir serves a prebuilt frontend bundle from the local filesystem.
type AssetDir struct {
	Path string
}

// Handler returns a file server rooted at the bundle directory.
func (s AssetDir) Handler() (http.Handler, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("asset directory %q: %w", s.Path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset path %q is not a directory", s.Path)
	}
	return http.FileServer(http.Dir(s.Path)), nil
}

// Describe implements Source.
func (s AssetDir) Describe() string {
	return "asset directory " + s.Path
}
