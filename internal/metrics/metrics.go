// Package metrics provides lightweight operation counters.
package metrics

// Recorder records the outcome of named operations.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// RecordOperation increments the counter for an operation outcome,
	// e.g. ("glossary.create", "ok") or ("term.update", "not_found_or_unauthorized").
	RecordOperation(op, outcome string)

	// Snapshot returns a copy of all counters keyed "op:outcome".
	Snapshot() map[string]uint64
}
