package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vk/annobridge/internal/app"
	"github.com/vk/annobridge/internal/cli"
	"github.com/vk/annobridge/internal/ctxlog"
	"github.com/vk/annobridge/internal/hcl"
	"github.com/vk/annobridge/internal/probe"
)

// probeTimeout bounds the smoke check's full round trip.
const probeTimeout = 10 * time.Second

// main is the entrypoint for the annobridge binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Startup panics (bad configuration, wiring bugs) are recovered
// into a plain error so the user gets a clean message instead of a stack.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appConfig.ProbeURL != "" {
		logger := slog.New(slog.NewTextHandler(outW, nil))
		return probe.Check(ctxlog.WithLogger(ctx, logger), appConfig.ProbeURL, probeTimeout)
	}

	loader := hcl.NewLoader()
	bridgeApp := app.NewApp(outW, appConfig, loader)

	return bridgeApp.Run(ctx)
}
