package yaml_adapter

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func position(file string, n *yaml.Node) string {
	return fmt.Sprintf("%s:%d,%d", file, n.Line, n.Column)
}

func translateApp(d *appDoc, file string) (*config.AppSettings, error) {
	s := &config.AppSettings{}
	if d.Ticks != nil {
		if *d.Ticks < 0 {
			return nil, fmt.Errorf("%s: app.ticks must not be negative, got %d", file, *d.Ticks)
		}
		s.Ticks = *d.Ticks
	}
	if d.IntervalMS != nil {
		if *d.IntervalMS < 0 {
			return nil, fmt.Errorf("%s: app.interval_ms must not be negative, got %d", file, *d.IntervalMS)
		}
		s.Interval = time.Duration(*d.IntervalMS) * time.Millisecond
	}
	return s, nil
}

func translatePlugin(ctx context.Context, d *pluginDoc, file string) (*config.PluginRef, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("%s: plugin entry without a name", file)
	}
	logger := ctxlog.FromContext(ctx).With("plugin", d.Name)

	ref := &config.PluginRef{Name: d.Name, Settings: cty.NilVal, Source: file}
	if d.Settings.Kind == 0 {
		logger.Debug("Plugin has no settings.")
		return ref, nil
	}
	ref.Source = position(file, &d.Settings)

	val, err := nodeToCty(&d.Settings)
	if err != nil {
		return nil, fmt.Errorf("plugin %q (%s): invalid settings: %w", d.Name, ref.Source, err)
	}
	if !val.IsNull() {
		if !val.Type().IsObjectType() {
			return nil, fmt.Errorf("plugin %q (%s): settings must be an object, got %s", d.Name, ref.Source, val.Type().FriendlyName())
		}
		ref.Settings = val
	}

	logger.Debug("Plugin settings evaluated.", "source", ref.Source)
	return ref, nil
}

// nodeToCty converts a YAML node into the cty value HCL would produce for
// the equivalent expression: mappings become objects, sequences tuples.
func nodeToCty(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return nodeToCty(n.Content[0])
	case yaml.AliasNode:
		return nodeToCty(n.Alias)
	case yaml.MappingNode:
		attrs := make(map[string]cty.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return cty.NilVal, fmt.Errorf("line %d: keys must be scalars", k.Line)
			}
			if _, dup := attrs[k.Value]; dup {
				return cty.NilVal, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
			}
			v, err := nodeToCty(n.Content[i+1])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k.Value] = v
		}
		return cty.ObjectVal(attrs), nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeToCty(c)
			if err != nil {
				return cty.NilVal, err
			}
			vals[i] = v
		}
		return cty.TupleVal(vals), nil
	case yaml.ScalarNode:
		return scalarToCty(n)
	}
	return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func scalarToCty(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return cty.NilVal, fmt.Errorf("line %d: %s is not a finite number", n.Line, n.Value)
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.StringVal(n.Value), nil
	}
}
