package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

func pending(unit string) domain.PendingUnit {
	return domain.PendingUnit{Unit: unit, Name: "Jane Doe", Supplier: "UPS", ParcelType: "BROWN BOX"}
}

func TestQueueEnqueueAndList(t *testing.T) {
	q := NewQueue()
	assert.Equal(t, 0, q.Size())

	q.Enqueue(pending("101"))
	q.Enqueue(pending("202"))

	units := q.ListPending()
	assert.Len(t, units, 2)
	assert.Equal(t, "101", units[0].Unit)
	assert.Equal(t, "202", units[1].Unit)
}

func TestQueueListReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.Enqueue(pending("101"))

	units := q.ListPending()
	units[0].Unit = "mutated"

	assert.Equal(t, "101", q.ListPending()[0].Unit)
}

func TestQueueAcknowledgeRemovesAllMatching(t *testing.T) {
	q := NewQueue()
	q.Enqueue(pending("101"))
	q.Enqueue(pending("202"))
	q.Enqueue(pending("101"))

	removed := q.Acknowledge("101")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, q.Size())
	assert.Equal(t, "202", q.ListPending()[0].Unit)
}

func TestQueueAcknowledgeUnknownUnit(t *testing.T) {
	q := NewQueue()
	q.Enqueue(pending("101"))

	assert.Equal(t, 0, q.Acknowledge("999"))
	assert.Equal(t, 1, q.Size())
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	q.Enqueue(pending("101"))
	q.Enqueue(pending("202"))

	assert.Equal(t, 2, q.Clear())
	assert.Equal(t, 0, q.Size())
	assert.Equal(t, 0, q.Clear())
}

func TestQueueDuplicateUnitsAllowed(t *testing.T) {
	q := NewQueue()
	q.Enqueue(pending("101"))
	q.Enqueue(pending("101"))
	assert.Equal(t, 2, q.Size())
}

func TestQueueConcurrentAccess(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Enqueue(pending("101"))
			q.ListPending()
			q.Size()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, q.Size())
}
