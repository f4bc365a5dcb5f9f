package hcl_adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. For omitted optional attributes gohcl fills in a zero-width
// placeholder expression, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// translateApp converts the HCL app block into the agnostic model.
func translateApp(b *AppBlock, file string) (*config.AppSettings, error) {
	s := &config.AppSettings{}
	if b.Ticks != nil {
		if *b.Ticks < 0 {
			return nil, fmt.Errorf("%s: app.ticks must not be negative, got %d", file, *b.Ticks)
		}
		s.Ticks = *b.Ticks
	}
	if b.IntervalMS != nil {
		if *b.IntervalMS < 0 {
			return nil, fmt.Errorf("%s: app.interval_ms must not be negative, got %d", file, *b.IntervalMS)
		}
		s.Interval = time.Duration(*b.IntervalMS) * time.Millisecond
	}
	return s, nil
}

// translatePlugin converts the HCL plugin block into the agnostic model,
// evaluating its settings expression.
func translatePlugin(ctx context.Context, b *PluginBlock, file string) (*config.PluginRef, error) {
	logger := ctxlog.FromContext(ctx).With("plugin", b.Name)

	ref := &config.PluginRef{Name: b.Name, Settings: cty.NilVal, Source: file}
	if !isExprDefined(b.Settings) {
		logger.Debug("Plugin has no settings.")
		return ref, nil
	}
	ref.Source = b.Settings.Range().String()

	val, diags := b.Settings.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("plugin %q: invalid settings: %w", b.Name, diags)
	}
	if !val.IsNull() {
		ty := val.Type()
		if !ty.IsObjectType() && !ty.IsMapType() {
			return nil, fmt.Errorf("plugin %q (%s): settings must be an object, got %s", b.Name, ref.Source, ty.FriendlyName())
		}
		ref.Settings = val
	}

	logger.Debug("Plugin settings evaluated.", "source", ref.Source)
	return ref, nil
}
