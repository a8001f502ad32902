package lifecycle

import (
	"context"
	"sort"
	"sync"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/engine"
)

// Manager owns the container record set. Records are replaced wholesale on
// every refresh cycle; callers receive copies and must not expect updates
// in place.
type Manager struct {
	engine engine.Engine

	mu      sync.RWMutex
	records []container.Record
	byName  map[string]container.Record
	byID    map[string]container.Record
}

// NewManager creates a Manager bound to the active engine.
func NewManager(eng engine.Engine) *Manager {
	return &Manager{
		engine: eng,
		byName: make(map[string]container.Record),
		byID:   make(map[string]container.Record),
	}
}

// Refresh replaces the record set with a fresh listing from the engine.
func (m *Manager) Refresh(ctx context.Context) error {
	records, err := m.engine.ListContainers(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]container.Record, len(records))
	byID := make(map[string]container.Record, len(records))
	for _, r := range records {
		byName[r.Name] = r
		byID[r.ID] = r
	}

	m.mu.Lock()
	m.records = records
	m.byName = byName
	m.byID = byID
	m.mu.Unlock()
	return nil
}

// Get looks up a record by container name or ID.
func (m *Manager) Get(target string) (container.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if r, ok := m.byName[target]; ok {
		return r, true
	}
	r, ok := m.byID[target]
	return r, ok
}

// List returns the current record set sorted by container name.
func (m *Manager) List() []container.Record {
	m.mu.RLock()
	records := make([]container.Record, len(m.records))
	copy(records, m.records)
	m.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// Running returns the records currently in the running state.
func (m *Manager) Running() []container.Record {
	var running []container.Record
	for _, r := range m.List() {
		if r.Status == container.StatusRunning {
			running = append(running, r)
		}
	}
	return running
}
