package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownPlugin is returned for names no module registered.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Module is the interface that all compiled-in modules implement to be
// registered.
type Module interface {
	Register(c *Catalog)
}

// Decoder decodes the plugin's manifest settings onto target, a pointer to a
// struct with `cty` tags. Fields the manifest omits keep their value.
type Decoder func(target any) error

// Factory creates a configured plugin.
type Factory func(decode Decoder) (app.Plugin, error)

// Catalog holds the named plugin factories of one process.
type Catalog struct {
	factories map[string]Factory
}

// New creates an empty catalog and registers every module into it.
func New(modules ...Module) *Catalog {
	c := &Catalog{factories: make(map[string]Factory)}
	for _, m := range modules {
		m.Register(c)
	}
	return c
}

// Register adds a named factory. Registering a name twice is a programming
// error and panics.
func (c *Catalog) Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("catalog: plugin name and factory are required")
	}
	if _, exists := c.factories[name]; exists {
		panic(fmt.Sprintf("plugin with name '%s' already registered", name))
	}
	slog.Debug("Registering plugin factory.", "name", name)
	c.factories[name] = f
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.factories[name]
	return ok
}

// Names returns the registered names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered factories.
func (c *Catalog) Len() int { return len(c.factories) }

// Instantiate builds the plugin registered as name with the given settings.
func (c *Catalog) Instantiate(ctx context.Context, name string, settings cty.Value, conv config.Converter) (app.Plugin, error) {
	f, ok := c.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, available: %s", ErrUnknownPlugin, name, strings.Join(c.Names(), ", "))
	}

	decode := func(target any) error {
		if settings.IsNull() {
			return nil
		}
		if conv == nil {
			return fmt.Errorf("plugin %q has settings but no converter was provided", name)
		}
		return conv.DecodeSettings(ctx, settings, target)
	}

	p, err := f(decode)
	if err != nil {
		return nil, fmt.Errorf("plugin %q: %w", name, err)
	}
	if p == nil {
		return nil, fmt.Errorf("plugin %q: factory returned no plugin", name)
	}
	return p, nil
}

// Resolve instantiates every plugin the model enables, in manifest order.
// All failures are collected into a single error.
func (c *Catalog) Resolve(ctx context.Context, model *config.Model, conv config.Converter) ([]app.Plugin, error) {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	plugins := make([]app.Plugin, 0, len(model.Plugins))
	for _, ref := range model.Plugins {
		p, err := c.Instantiate(ctx, ref.Name, ref.Settings, conv)
		if err != nil {
			if ref.Source != "" {
				err = fmt.Errorf("%s: %w", ref.Source, err)
			}
			errs = append(errs, err)
			continue
		}
		logger.Debug("Plugin resolved from catalog.", "plugin", ref.Name, "type", fmt.Sprintf("%T", p))
		plugins = append(plugins, p)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("manifest validation failed: %w", errors.Join(errs...))
	}
	return plugins, nil
}
