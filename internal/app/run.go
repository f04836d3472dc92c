package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/annobridge/internal/bridge"
	"github.com/vk/annobridge/internal/ctxlog"
)

// Run starts the bridge server and blocks until the context is cancelled or
// the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	channel := bridge.NewChannel(ctx, a.bridge)
	defer channel.Close()
	a.bridge.OnRender(a.samplePass)

	mux, err := a.buildMux(channel)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    a.model.Bridge.Listen,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("🧩 Component bridge listening",
			"address", a.model.Bridge.Listen,
			"mode", string(a.model.Bridge.Mode),
			"components", a.registry.Names(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down bridge server.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("bridge server failed: %w", err)
	}
}
