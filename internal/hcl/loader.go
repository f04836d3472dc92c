package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/annobridge/internal/component"
	"github.com/vk/annobridge/internal/config"
	"github.com/vk/annobridge/internal/ctxlog"
	"github.com/vk/annobridge/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file reachable from the given paths, parses them,
// and merges all recognized blocks into a single model. Relative asset
// directories resolve against the file that declared them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	files, err := l.findConfigFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl configuration files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	seenBridge := false

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Bridge != nil {
			if seenBridge {
				return nil, fmt.Errorf("duplicate bridge block in %s: only one is allowed", file)
			}
			seenBridge = true
			if err := l.translateBridge(root.Bridge, model.Bridge); err != nil {
				return nil, fmt.Errorf("invalid bridge block in %s: %w", file, err)
			}
		}

		for _, block := range root.Components {
			if _, exists := model.Components[block.Name]; exists {
				return nil, fmt.Errorf("duplicate component %q in %s", block.Name, file)
			}
			model.Components[block.Name] = l.translateComponent(block, filepath.Dir(file))
		}
	}

	logger.Debug("HCL loading complete.",
		"components", len(model.Components),
		"mode", string(model.Bridge.Mode),
	)
	return model, nil
}

// translateBridge merges a bridge block into the default settings.
func (l *Loader) translateBridge(block *bridgeBlock, settings *config.BridgeSettings) error {
	if block.Mode != "" {
		mode, err := component.ParseMode(block.Mode)
		if err != nil {
			return err
		}
		settings.Mode = mode
	}
	if block.Listen != "" {
		settings.Listen = block.Listen
	}
	if block.SessionCap != 0 {
		if block.SessionCap < 0 {
			return fmt.Errorf("session_cap cannot be negative, got %d", block.SessionCap)
		}
		settings.SessionCap = block.SessionCap
	}
	return nil
}

// translateComponent converts a component block into the agnostic model,
// anchoring relative asset directories at the declaring file's location.
func (l *Loader) translateComponent(block *componentBlock, baseDir string) *config.ComponentDefinition {
	assetDir := block.AssetDir
	if assetDir != "" && !filepath.IsAbs(assetDir) {
		assetDir = filepath.Join(baseDir, assetDir)
	}
	return &config.ComponentDefinition{
		Name:     block.Name,
		DevURL:   block.DevURL,
		AssetDir: assetDir,
	}
}

// findConfigFiles accepts files and directories; directories are walked
// recursively. Missing paths are skipped so optional locations can be probed.
func (l *Loader) findConfigFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, dup := seen[p]; !dup {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return all, nil
}
