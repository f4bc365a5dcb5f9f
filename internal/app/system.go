package app

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/burstworld/internal/world"
)

// System is a unit of per-tick work over the world.
type System interface {
	Name() string
	Run(ctx context.Context, w *world.World) error
}

// SystemFunc is the plain function form of a system.
type SystemFunc func(ctx context.Context, w *world.World) error

type funcSystem struct {
	name string
	fn   SystemFunc
}

// Func wraps fn as a System.
func Func(name string, fn SystemFunc) System {
	return &funcSystem{name: name, fn: fn}
}

func (s *funcSystem) Name() string { return s.name }

func (s *funcSystem) Run(ctx context.Context, w *world.World) error { return s.fn(ctx, w) }

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// injectedSystem calls a function whose parameters are resolved from the
// world on every run.
type injectedSystem struct {
	name   string
	fn     reflect.Value
	params []reflect.Type
}

// Inject builds a System from a function whose parameter types declare what
// it needs. Supported parameters are context.Context, *world.World,
// *world.Store[T] and *unique.Tracked[T]. The function returns nothing or a
// single error:
//
//	app.Inject("regen", func(hp *world.Store[Health], clock *unique.Tracked[Clock]) {
//	    ...
//	})
//
// Signatures are checked here; unique resources are looked up on each run.
func Inject(name string, fn any) (System, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %s: expected a function, got %T", ErrInvalidSystem, name, fn)
	}

	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: %s: variadic functions are not supported", ErrInvalidSystem, name)
	}

	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		p := t.In(i)
		if p != contextType && !world.CanResolve(p) {
			return nil, fmt.Errorf("%w: %s: parameter %d has unsupported type %s", ErrInvalidSystem, name, i, p)
		}
		params[i] = p
	}

	switch {
	case t.NumOut() == 0:
	case t.NumOut() == 1 && t.Out(0) == errorType:
	default:
		return nil, fmt.Errorf("%w: %s: must return nothing or error, returns %s", ErrInvalidSystem, name, t)
	}

	return &injectedSystem{name: name, fn: v, params: params}, nil
}

func (s *injectedSystem) Name() string { return s.name }

func (s *injectedSystem) Run(ctx context.Context, w *world.World) error {
	args := make([]reflect.Value, len(s.params))
	for i, p := range s.params {
		if p == contextType {
			args[i] = reflect.ValueOf(&ctx).Elem()
			continue
		}
		v, err := w.Resolve(p)
		if err != nil {
			return fmt.Errorf("resolve parameter %d: %w", i, err)
		}
		args[i] = v
	}

	out := s.fn.Call(args)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}
