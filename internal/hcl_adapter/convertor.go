package hcl_adapter

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

var durationType = reflect.TypeFor[time.Duration]()

// maxDurationMS is the largest millisecond count a time.Duration can hold.
const maxDurationMS = math.MaxInt64 / int64(time.Millisecond)

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// DecodeSettings copies each attribute of settings onto the field of target
// tagged `cty:"<name>"`, converting it to the field's type. Fields without a
// matching attribute are left alone. time.Duration fields accept a duration
// string ("250ms") or a number of milliseconds.
func (c *Converter) DecodeSettings(ctx context.Context, settings cty.Value, target any) error {
	logger := ctxlog.FromContext(ctx)

	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("settings target must be a non-nil pointer to a struct, got %T", target)
	}
	if settings.IsNull() {
		return nil
	}
	if !settings.IsWhollyKnown() {
		return fmt.Errorf("settings contain unknown values")
	}
	ty := settings.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("settings must be an object, got %s", ty.FriendlyName())
	}

	dst := ptr.Elem()
	fields := taggedFields(dst.Type())

	var errs []string
	attrs := settings.AsValueMap()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		idx, ok := fields[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("unsupported setting %q", name))
			continue
		}
		field := dst.Field(idx)
		if err := decodeField(attrs[name], field); err != nil {
			errs = append(errs, fmt.Sprintf("setting %q: %v", name, err))
			continue
		}
		logger.Debug("Decoded plugin setting.", "setting", name, "go_type", field.Type().String())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid settings:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// taggedFields maps `cty` tag names to exported field indexes.
func taggedFields(t reflect.Type) map[string]int {
	fields := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("cty"), ",")[0]
		if tag != "" && tag != "-" {
			fields[tag] = i
		}
	}
	return fields
}

func decodeField(val cty.Value, field reflect.Value) error {
	if val.IsNull() {
		return nil
	}

	if field.Type() == durationType {
		d, err := decodeDuration(val)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	want, err := gocty.ImpliedType(reflect.Zero(field.Type()).Interface())
	if err != nil {
		return fmt.Errorf("cannot imply cty type from Go type %s: %w", field.Type(), err)
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, field.Addr().Interface())
}

func decodeDuration(val cty.Value) (time.Duration, error) {
	switch val.Type() {
	case cty.String:
		d, err := time.ParseDuration(val.AsString())
		if err != nil {
			return 0, err
		}
		return d, nil
	case cty.Number:
		var ms int64
		if err := gocty.FromCtyValue(val, &ms); err != nil {
			return 0, err
		}
		if ms > maxDurationMS || ms < -maxDurationMS {
			return 0, fmt.Errorf("%d milliseconds is out of range", ms)
		}
		return time.Duration(ms) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("duration must be a string or a number of milliseconds, got %s", val.Type().FriendlyName())
	}
}
