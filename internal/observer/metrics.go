package observer

import (
	"sync"
	"time"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/event"
)

// Metrics aggregates hub traffic: per-type event counts, action failure
// counts, and the most recent resource usage snapshot from stats events.
type Metrics struct {
	mu    sync.Mutex
	hub   *event.Hub
	subID string

	counts    map[string]int
	failures  int
	lastStats []container.StatsRow
	statsAt   time.Time
}

// MetricsSnapshot is a point-in-time copy of the collected metrics.
type MetricsSnapshot struct {
	EventCounts   map[string]int
	FailedActions int
	Stats         []container.StatsRow
	StatsAt       time.Time
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{counts: make(map[string]int)}
}

// Attach subscribes the collector to all events on the hub.
func (m *Metrics) Attach(hub *event.Hub) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hub != nil {
		return
	}
	m.hub = hub
	m.subID = hub.SubscribeAll(m.handle)
}

// Detach removes the collector's hub subscription.
func (m *Metrics) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hub == nil {
		return
	}
	m.hub.Unsubscribe(m.subID)
	m.hub = nil
	m.subID = ""
}

func (m *Metrics) handle(ev event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[ev.Type]++

	switch ev.Type {
	case event.TypeContainerAction:
		if payload, ok := ev.Payload.(event.ActionPayload); ok && payload.Err != "" {
			m.failures++
		}
	case event.TypeMetricsUpdated:
		if rows, ok := ev.Payload.([]container.StatsRow); ok {
			m.lastStats = rows
			m.statsAt = ev.Timestamp
		}
	}
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		counts[k] = v
	}
	stats := make([]container.StatsRow, len(m.lastStats))
	copy(stats, m.lastStats)

	return MetricsSnapshot{
		EventCounts:   counts,
		FailedActions: m.failures,
		Stats:         stats,
		StatsAt:       m.statsAt,
	}
}
