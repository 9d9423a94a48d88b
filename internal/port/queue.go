package port

import "github.com/blacks1k-sc/ParcelVision/internal/domain"

// PendingQueue holds units waiting for the valet browser script to pick
// them up. Acknowledge removes every entry matching the unit identifier.
type PendingQueue interface {
	Enqueue(unit domain.PendingUnit)
	ListPending() []domain.PendingUnit
	Acknowledge(unit string) int
	Clear() int
	Size() int
}
