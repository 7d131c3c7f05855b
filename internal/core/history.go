// Package core provides the runtime core tier of the Turing machine driver.
// StepHistory keeps a bounded trace of executed steps and per-state visit counts.
// Stdlib-only implementation.
// Thread-safe for concurrent access.
package core

import (
	"sync"

	"github.com/comalice/turingx/internal/primitives"
)

// DefaultHistorySize is the number of steps a StepHistory keeps when no size is given.
const DefaultHistorySize = 256

// StepHistory tracks recently executed steps.
// Recent: a ring of the last N StepEvents, oldest first on read.
// Visits: how many steps started in each state over the whole run.
type StepHistory struct {
	mu     sync.RWMutex
	ring   []primitives.StepEvent
	next   int
	full   bool
	visits map[string]int
}

// NewStepHistory creates a StepHistory holding up to size steps.
func NewStepHistory(size int) *StepHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &StepHistory{
		ring:   make([]primitives.StepEvent, size),
		visits: make(map[string]int),
	}
}

// Record appends a step, evicting the oldest when full.
func (h *StepHistory) Record(ev primitives.StepEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ring[h.next] = ev
	h.next = (h.next + 1) % len(h.ring)
	if h.next == 0 {
		h.full = true
	}
	h.visits[ev.State]++
}

// Recent returns up to n most recent steps, oldest first. n <= 0 returns all kept steps.
func (h *StepHistory) Recent(n int) []primitives.StepEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()

	size := h.next
	if h.full {
		size = len(h.ring)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]primitives.StepEvent, 0, n)
	start := h.next - n
	if start < 0 {
		start += len(h.ring)
	}
	for i := 0; i < n; i++ {
		out = append(out, h.ring[(start+i)%len(h.ring)])
	}
	return out
}

// Visits returns how many recorded steps started in state.
func (h *StepHistory) Visits(state string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.visits[state]
}

// Clear drops all recorded steps and counts.
func (h *StepHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next = 0
	h.full = false
	h.visits = make(map[string]int)
}
