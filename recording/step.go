// Package recording keeps a record of executed test steps so that runs can be
// inspected after the fact.
package recording

import "sync"

// A Step is the record of one driven transition.
type Step struct {
	RunID   string
	Case    string
	Index   int
	From    string
	To      string
	Type    string
	Variant string

	// Tier is the resolution tier of the preparation that ran.
	Tier string

	Expected   int64
	Observed   int64
	StateFound bool
	Passed     bool

	// Time is the harness clock reading after the step.
	Time uint64
}

// A Recorder stores steps.
type Recorder interface {
	// Record buffers a step.
	Record(step Step)

	// Flush writes buffered steps to the backend.
	Flush() error

	// Steps returns all steps recorded so far, in recording order.
	Steps() ([]Step, error)
}

// MemoryRecorder keeps steps in memory.
type MemoryRecorder struct {
	mu    sync.Mutex
	steps []Step
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends a step.
func (r *MemoryRecorder) Record(step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps = append(r.steps, step)
}

// Flush does nothing.
func (r *MemoryRecorder) Flush() error {
	return nil
}

// Steps returns a copy of the recorded steps.
func (r *MemoryRecorder) Steps() ([]Step, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)

	return steps, nil
}
