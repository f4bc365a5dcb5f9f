package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths, in path order and then lexical
// file order, and merges them into one model. At most one `app` block may
// appear across all files, and each plugin may be enabled once.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{App: &config.AppSettings{}}

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	appFile := ""
	enabled := make(map[string]string)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.App != nil {
			if appFile != "" {
				return nil, nil, fmt.Errorf("duplicate app block in %s, first declared in %s", file, appFile)
			}
			appFile = file
			if model.App, err = translateApp(root.App, file); err != nil {
				return nil, nil, err
			}
		}

		for _, block := range root.Plugins {
			if first, ok := enabled[block.Name]; ok {
				return nil, nil, fmt.Errorf("plugin %q enabled twice: in %s and %s", block.Name, first, file)
			}
			ref, err := translatePlugin(ctx, block, file)
			if err != nil {
				return nil, nil, err
			}
			enabled[block.Name] = file
			model.Plugins = append(model.Plugins, ref)
		}
	}

	logger.Debug("HCL loading complete.", "plugins", len(model.Plugins), "ticks", model.App.Ticks, "interval", model.App.Interval)
	return model, NewConverter(), nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	return fsutil.FindFiles(paths, ".hcl")
}
