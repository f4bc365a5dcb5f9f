package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest file found under paths, merges them into a
	// single model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter binds loosely typed settings onto Go values.
type Converter interface {
	// DecodeSettings decodes an object value onto the struct pointed to by
	// target. Fields keep their current value when the object omits them, so
	// callers pre-fill defaults. Attributes with no matching `cty` tag are
	// an error.
	DecodeSettings(ctx context.Context, settings cty.Value, target any) error

	// ToCtyValue converts a native Go value into its cty equivalent.
	ToCtyValue(v any) (cty.Value, error)
}
