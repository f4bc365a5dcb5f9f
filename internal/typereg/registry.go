package typereg

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeKey identifies a concrete Go type within a Registry. The zero value is
// never assigned and means "no type".
type TypeKey uint32

// Valid reports whether k was produced by a Registry.
func (k TypeKey) Valid() bool { return k != 0 }

// Less orders keys by interning order.
func (k TypeKey) Less(other TypeKey) bool { return k < other }

// Entry is a single (key, type, name) association in a Registry snapshot.
type Entry struct {
	Key  TypeKey
	Type reflect.Type
	Name string
}

// Registry maps reflect.Type to TypeKey and TypeKey back to a type name.
// Mappings are append-only: once a key is assigned its name never changes.
type Registry struct {
	mu    sync.RWMutex
	keys  map[reflect.Type]TypeKey
	types []reflect.Type // index is key-1
	names []string       // index is key-1
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		keys: make(map[reflect.Type]TypeKey),
	}
}

// Intern returns the key for t, assigning a new one on first sight.
func (r *Registry) Intern(t reflect.Type) TypeKey {
	if t == nil {
		panic("typereg: cannot intern a nil type")
	}

	r.mu.RLock()
	k, ok := r.keys[t]
	r.mu.RUnlock()
	if ok {
		return k
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another writer may have interned t between the two locks.
	if k, ok := r.keys[t]; ok {
		return k
	}

	r.types = append(r.types, t)
	r.names = append(r.names, t.String())
	k = TypeKey(len(r.types))
	r.keys[t] = k
	return k
}

// Of returns the key for T in r.
func Of[T any](r *Registry) TypeKey {
	return r.Intern(reflect.TypeFor[T]())
}

// Find returns the key for t without interning it.
func (r *Registry) Find(t reflect.Type) (TypeKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.keys[t]
	return k, ok
}

// Lookup returns the interned name for k.
func (r *Registry) Lookup(k TypeKey) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.inRange(k) {
		return "", false
	}
	return r.names[k-1], true
}

// Type returns the reflect.Type behind k.
func (r *Registry) Type(k TypeKey) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.inRange(k) {
		return nil, false
	}
	return r.types[k-1], true
}

// Names renders each key as its type name, for diagnostics.
func (r *Registry) Names(keys ...TypeKey) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(keys))
	for i, k := range keys {
		if r.inRange(k) {
			out[i] = r.names[k-1]
		} else {
			out[i] = fmt.Sprintf("<unknown:%d>", k)
		}
	}
	return out
}

// Len returns the number of interned types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Entries returns a snapshot of all mappings in key order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.types))
	for i := range r.types {
		out[i] = Entry{Key: TypeKey(i + 1), Type: r.types[i], Name: r.names[i]}
	}
	return out
}

// inRange must be called with r.mu held.
func (r *Registry) inRange(k TypeKey) bool {
	return k > 0 && int(k) <= len(r.types)
}
