package app

import (
	"fmt"
	"strings"
)

// Entry is one scheduled system and the plugin that registered it. Plugin is
// empty for systems added directly on the builder.
type Entry struct {
	System System
	Plugin string
}

// Schedule is the ordered, immutable list of systems an App runs each tick.
type Schedule struct {
	entries []Entry
}

func newSchedule(entries []Entry) *Schedule {
	return &Schedule{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of systems.
func (s *Schedule) Len() int { return len(s.entries) }

// Entries returns a copy of the schedule.
func (s *Schedule) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Names returns system names in run order.
func (s *Schedule) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.System.Name()
	}
	return names
}

func (s *Schedule) String() string {
	var sb strings.Builder
	for i, e := range s.entries {
		owner := e.Plugin
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(&sb, "%3d  %-40s %s\n", i+1, e.System.Name(), owner)
	}
	return sb.String()
}
