package metrics

import "sync"

// InMemory is a process-local Recorder backed by a mutex-guarded map.
// Counters reset on restart; good enough for a single-instance API.
type InMemory struct {
	mu       sync.Mutex
	counters map[string]uint64
}

// NewInMemory creates an empty in-memory recorder.
func NewInMemory() *InMemory {
	return &InMemory{counters: make(map[string]uint64)}
}

// RecordOperation increments the counter for op:outcome.
func (m *InMemory) RecordOperation(op, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[op+":"+outcome]++
}

// Snapshot returns a copy of all counters.
func (m *InMemory) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]uint64, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out
}
