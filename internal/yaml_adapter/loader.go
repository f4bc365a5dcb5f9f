// Package yaml_adapter loads YAML manifests into the format-agnostic config
// model. Settings become the same cty values the HCL adapter produces, so
// both formats share hcl_adapter's Converter.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/fsutil"
	"github.com/specialistvlad/burstworld/internal/hcl_adapter"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions are the file extensions the loader reads.
var Extensions = []string{".yaml", ".yml"}

// IsManifest reports whether path names a YAML manifest file.
func IsManifest(path string) bool {
	return slices.Contains(Extensions, filepath.Ext(path))
}

// Load parses every .yaml and .yml file under paths and merges them with
// the same rules as the HCL loader: one app section, each plugin once.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{App: &config.AppSettings{}}
	appFile := ""
	enabled := make(map[string]string)

	for _, file := range files {
		root, err := decodeFile(file)
		if err != nil {
			return nil, nil, err
		}

		if root.App != nil {
			if appFile != "" {
				return nil, nil, fmt.Errorf("duplicate app section in %s, first declared in %s", file, appFile)
			}
			appFile = file
			if model.App, err = translateApp(root.App, file); err != nil {
				return nil, nil, err
			}
		}

		for _, doc := range root.Plugins {
			if doc == nil {
				continue
			}
			if first, ok := enabled[doc.Name]; ok {
				return nil, nil, fmt.Errorf("plugin %q enabled twice: in %s and %s", doc.Name, first, file)
			}
			ref, err := translatePlugin(ctx, doc, file)
			if err != nil {
				return nil, nil, err
			}
			enabled[doc.Name] = file
			model.Plugins = append(model.Plugins, ref)
		}
	}

	logger.Debug("YAML loading complete.", "plugins", len(model.Plugins), "ticks", model.App.Ticks, "interval", model.App.Interval)
	return model, hcl_adapter.NewConverter(), nil
}

func decodeFile(file string) (*fileRoot, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", file, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}
	return &root, nil
}
