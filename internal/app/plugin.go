package app

import (
	"reflect"

	"github.com/specialistvlad/burstworld/internal/typereg"
)

// Plugin registers systems and other plugins into a Builder.
type Plugin interface {
	Build(b *Builder)
}

// MultiPlugin is implemented by plugins that may be registered more than
// once, each registration running Build again.
type MultiPlugin interface {
	Plugin
	AllowsMultiple() bool
}

// Identity returns the key identifying p's plugin type in types. Pointer and
// value forms of the same type share an identity.
func Identity(types *typereg.Registry, p Plugin) typereg.TypeKey {
	t := reflect.TypeOf(p)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return types.Intern(t)
}

func allowsMultiple(p Plugin) bool {
	mp, ok := p.(MultiPlugin)
	return ok && mp.AllowsMultiple()
}

func isNilPlugin(p Plugin) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// PluginInfo describes one registered plugin instance.
type PluginInfo struct {
	Name           string
	AllowsMultiple bool
	Systems        []string
	Registered     []string // plugins this one registered, including deduplicated ones
}
