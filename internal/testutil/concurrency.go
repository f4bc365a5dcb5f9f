package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/world"
)

// RecorderModule is a shared, self-contained module for tests that need to
// observe the tick loop from outside. Its "recorder" plugin records the
// execution time of every tick and reports each completed tick on a channel.
type RecorderModule struct {
	ExecutionTimes map[uint64]*ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
	completionChan chan<- uint64
	tick           uint64
}

// NewRecorderModule creates a new recorder. Each recorded tick sleeps for
// sleep; completionChan may be nil.
func NewRecorderModule(completionChan chan<- uint64, sleep time.Duration) *RecorderModule {
	return &RecorderModule{
		ExecutionTimes: make(map[uint64]*ExecutionRecord),
		sleepDuration:  sleep,
		completionChan: completionChan,
	}
}

// Ticks returns the number of recorded ticks.
func (m *RecorderModule) Ticks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ExecutionTimes)
}

// Build implements app.Plugin.
func (m *RecorderModule) Build(b *app.Builder) {
	b.AddSystemFunc("recorder", m.record)
}

func (m *RecorderModule) record(ctx context.Context, _ *world.World) error {
	start := time.Now()
	if m.sleepDuration > 0 {
		select {
		case <-time.After(m.sleepDuration):
		case <-ctx.Done():
		}
	}
	end := time.Now()

	m.mu.Lock()
	m.tick++
	n := m.tick
	m.ExecutionTimes[n] = &ExecutionRecord{Start: start, End: end}
	m.mu.Unlock()

	if m.completionChan != nil {
		select {
		case m.completionChan <- n:
		default:
		}
	}
	return nil
}

// Register registers the recorder itself as the "recorder" plugin.
func (m *RecorderModule) Register(c *catalog.Catalog) {
	c.Register("recorder", func(catalog.Decoder) (app.Plugin, error) {
		return m, nil
	})
}
