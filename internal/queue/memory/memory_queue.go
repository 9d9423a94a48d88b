package memory

import (
	"sync"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

// Queue is the in-memory valet hand-off queue. Entries live only for the
// lifetime of the process; the append-only ledger is the durable record.
type Queue struct {
	mu      sync.Mutex
	pending []domain.PendingUnit
}

// NewQueue creates an empty valet queue.
func NewQueue() *Queue {
	return &Queue{}
}

var _ port.PendingQueue = (*Queue)(nil)

// Enqueue appends a unit for the polling script to pick up. Duplicate units
// are allowed: two parcels for the same unit are two hand-offs.
func (q *Queue) Enqueue(unit domain.PendingUnit) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, unit)
}

// ListPending returns a snapshot of the queue in arrival order.
func (q *Queue) ListPending() []domain.PendingUnit {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.PendingUnit, len(q.pending))
	copy(out, q.pending)
	return out
}

// Acknowledge removes every entry for the given unit and returns how many
// were removed. Zero means the unit was not queued, which the caller treats
// as already handled.
func (q *Queue) Acknowledge(unit string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.pending[:0]
	removed := 0
	for _, p := range q.pending {
		if p.Unit == unit {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	q.pending = kept
	return removed
}

// Clear empties the queue and returns how many entries were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	q.pending = nil
	return n
}

// Size returns the current queue depth.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
