package app

import (
	"github.com/specialistvlad/burstworld/internal/typereg"
)

// pluginRecord is one registered plugin instance: a node of the registration
// graph. Edges point from a plugin to the plugins it registered.
type pluginRecord struct {
	key            typereg.TypeKey
	name           string
	allowsMultiple bool
	systems        []string
	children       []*pluginRecord
}

// registrationGraph keeps plugin records in registration order.
type registrationGraph struct {
	records []*pluginRecord
	byKey   map[typereg.TypeKey][]*pluginRecord
}

func newRegistrationGraph() *registrationGraph {
	return &registrationGraph{
		byKey: make(map[typereg.TypeKey][]*pluginRecord),
	}
}

func (g *registrationGraph) add(key typereg.TypeKey, name string, multi bool) *pluginRecord {
	rec := &pluginRecord{key: key, name: name, allowsMultiple: multi}
	g.records = append(g.records, rec)
	g.byKey[key] = append(g.byKey[key], rec)
	return rec
}

func (g *registrationGraph) has(key typereg.TypeKey) bool {
	return len(g.byKey[key]) > 0
}

func (g *registrationGraph) first(key typereg.TypeKey) *pluginRecord {
	if recs := g.byKey[key]; len(recs) > 0 {
		return recs[0]
	}
	return nil
}

// link adds an edge parent -> child. A nil parent is the builder itself and
// records nothing. Duplicate edges are ignored.
func (g *registrationGraph) link(parent, child *pluginRecord) {
	if parent == nil || child == nil {
		return
	}
	for _, c := range parent.children {
		if c == child {
			return
		}
	}
	parent.children = append(parent.children, child)
}

func (g *registrationGraph) len() int { return len(g.records) }

// detectCycles checks that no record is reachable from itself. It uses a
// depth-first search with three sets of nodes:
// done: fully visited and not part of a cycle.
// onPath: on the current recursion path.
// unvisited: everything else.
func (g *registrationGraph) detectCycles(types *typereg.Registry) error {
	done := make(map[*pluginRecord]bool)
	onPath := make(map[*pluginRecord]bool)
	var path []*pluginRecord

	var visit func(r *pluginRecord) error
	visit = func(r *pluginRecord) error {
		if done[r] {
			return nil
		}
		if onPath[r] {
			return newCycleError(types, cycleChain(path, r))
		}

		onPath[r] = true
		path = append(path, r)

		for _, child := range r.children {
			if err := visit(child); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		delete(onPath, r)
		done[r] = true
		return nil
	}

	for _, r := range g.records {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// cycleChain returns the keys of path from the first occurrence of r, closed
// with r again.
func cycleChain(path []*pluginRecord, r *pluginRecord) []typereg.TypeKey {
	start := 0
	for i, p := range path {
		if p == r {
			start = i
			break
		}
	}
	chain := make([]typereg.TypeKey, 0, len(path)-start+1)
	for _, p := range path[start:] {
		chain = append(chain, p.key)
	}
	return append(chain, r.key)
}

func (r *pluginRecord) info() PluginInfo {
	registered := make([]string, len(r.children))
	for i, c := range r.children {
		registered[i] = c.name
	}
	return PluginInfo{
		Name:           r.name,
		AllowsMultiple: r.allowsMultiple,
		Systems:        append([]string(nil), r.systems...),
		Registered:     registered,
	}
}
