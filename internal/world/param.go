package world

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedParam is returned by Resolve for types the world cannot supply.
	ErrUnsupportedParam = errors.New("unsupported system parameter")
	// ErrUniqueMissing is returned by Resolve when a requested unique was never inserted.
	ErrUniqueMissing = errors.New("unique resource not present")
)

// storeParam is implemented by every *Store[T]. attach does not dereference
// its receiver, so it can be called on a nil *Store[T] to reach StoreOf[T].
type storeParam interface {
	attach(w *World) any
}

func (*Store[T]) attach(w *World) any { return StoreOf[T](w) }

// uniqueParam is implemented by *unique.Tracked[T].
type uniqueParam interface {
	ValueType() reflect.Type
}

var (
	worldType      = reflect.TypeFor[*World]()
	storeParamType = reflect.TypeFor[storeParam]()
	uniqueType     = reflect.TypeFor[uniqueParam]()
)

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }

// CanResolve reports whether Resolve knows how to supply values of type t.
// It does not check that uniques are present.
func CanResolve(t reflect.Type) bool {
	if t == worldType {
		return true
	}
	if t.Kind() != reflect.Pointer {
		return false
	}
	return t.Implements(storeParamType) || t.Implements(uniqueType)
}

// Resolve produces a value for a system parameter of type t: the world itself,
// a component store (created on demand) or a unique tracker.
func (w *World) Resolve(t reflect.Type) (reflect.Value, error) {
	if t == worldType {
		return reflect.ValueOf(w), nil
	}
	if t.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedParam, t)
	}

	zero := reflect.Zero(t).Interface()

	if sp, ok := zero.(storeParam); ok {
		return reflect.ValueOf(sp.attach(w)), nil
	}

	if up, ok := zero.(uniqueParam); ok {
		key, found := w.types.Find(up.ValueType())
		if !found {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUniqueMissing, up.ValueType())
		}
		w.mu.RLock()
		tr, present := w.uniques[key]
		w.mu.RUnlock()
		if !present || reflect.TypeOf(tr) != t {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUniqueMissing, up.ValueType())
		}
		return reflect.ValueOf(tr), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedParam, t)
}
