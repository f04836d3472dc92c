package config

import "github.com/vk/annobridge/internal/component"

// Model is the unified representation of the entire bridge configuration.
type Model struct {
	Bridge     *BridgeSettings
	Components map[string]*ComponentDefinition
}

// BridgeSettings configures the host side of the bridge. Mode is the single
// static switch between the two asset-resolution strategies; it cannot be
// changed without editing the configuration and restarting.
type BridgeSettings struct {
	Mode       component.Mode
	Listen     string
	SessionCap int
}

// ComponentDefinition describes where one declared component's frontend
// assets live in each mode.
type ComponentDefinition struct {
	Name     string
	DevURL   string
	AssetDir string
}

// DefaultListen is the bind address used when none is configured.
const DefaultListen = "127.0.0.1:8765"

// NewModel returns a model populated with defaults.
func NewModel() *Model {
	return &Model{
		Bridge: &BridgeSettings{
			Mode:   component.ModeDevelopment,
			Listen: DefaultListen,
		},
		Components: make(map[string]*ComponentDefinition),
	}
}
