package app

import (
	"fmt"
	"net/http"

	"github.com/vk/annobridge/internal/bridge"
)

// healthHandler answers liveness checks.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// buildMux assembles the bridge's HTTP surface: the socket channel, one
// asset route per declared component, and the health endpoint.
func (a *App) buildMux(channel *bridge.Channel) (*http.ServeMux, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/socket.io/", channel.Handler())

	for _, name := range a.registry.Names() {
		decl, _ := a.registry.Lookup(name)
		handler, err := decl.Source.Handler()
		if err != nil {
			return nil, fmt.Errorf("component %q assets unavailable: %w", name, err)
		}
		prefix := "/components/" + name + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, handler))
		a.logger.Info("Component assets mounted.", "name", name, "route", prefix, "source", decl.Source.Describe())
	}
	return mux, nil
}
