package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/annobridge/internal/bridge"
	"github.com/vk/annobridge/internal/component"
	"github.com/vk/annobridge/internal/config"
	"github.com/vk/annobridge/internal/ctxlog"
	"github.com/vk/annobridge/internal/session"
	"github.com/vk/annobridge/widgets/spanannotator"
)

// App encapsulates the bridge's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *component.Registry
	model    *config.Model
	bridge   *bridge.Bridge
}

// NewApp is the constructor for the main application. It loads the
// configuration, declares every configured component under the mode the
// configuration fixed at load time, and wires the bridge. Critical startup
// failures panic; the caller recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	if appConfig.Listen != "" {
		model.Bridge.Listen = appConfig.Listen
	}
	logger.Debug("Configuration loaded.", "mode", string(model.Bridge.Mode))

	registry := component.NewRegistry()
	if err := declareComponents(model, registry); err != nil {
		panic(err)
	}
	logger.Debug("All components declared.", "count", len(registry.Names()))

	sessions, err := session.NewStore(model.Bridge.SessionCap)
	if err != nil {
		panic(fmt.Errorf("failed to create session store: %w", err))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: registry,
		model:    model,
		bridge:   bridge.New(registry, sessions),
	}
}

// declareComponents builds each component's asset source for the configured
// mode and declares it. The span annotator registers through its widget;
// any other configured component gets a plain declaration.
func declareComponents(model *config.Model, registry *component.Registry) error {
	for _, def := range model.Components {
		source, err := sourceFor(model.Bridge.Mode, def)
		if err != nil {
			return err
		}
		if def.Name == spanannotator.ComponentName {
			(&spanannotator.Widget{Source: source}).Register(registry)
			continue
		}
		registry.Declare(def.Name, source)
	}
	return nil
}

// sourceFor selects the asset-resolution strategy the mode fixes for a
// component definition.
func sourceFor(mode component.Mode, def *config.ComponentDefinition) (component.Source, error) {
	switch mode {
	case component.ModeDevelopment:
		if def.DevURL == "" {
			return nil, fmt.Errorf("component %q has no dev_url for development mode", def.Name)
		}
		return component.DevServer{URL: def.DevURL}, nil
	case component.ModeRelease:
		if def.AssetDir == "" {
			return nil, fmt.Errorf("component %q has no asset_dir for release mode", def.Name)
		}
		return component.AssetDir{Path: def.AssetDir}, nil
	default:
		return nil, fmt.Errorf("unsupported mode %q", mode)
	}
}

// Registry returns the application's component registry. Primarily for tests.
func (a *App) Registry() *component.Registry {
	return a.registry
}

// Bridge returns the application's bridge. Primarily for tests.
func (a *App) Bridge() *bridge.Bridge {
	return a.bridge
}
