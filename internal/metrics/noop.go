package metrics

// Noop is a Recorder that discards everything. Used in tests and as
// the default when no recorder is wired.
type Noop struct{}

// NewNoop creates a no-op recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// RecordOperation does nothing.
func (*Noop) RecordOperation(op, outcome string) {}

// Snapshot returns an empty map.
func (*Noop) Snapshot() map[string]uint64 {
	return map[string]uint64{}
}
