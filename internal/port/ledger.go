package port

import (
	"context"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// Ledger is the append-only row store for processed parcels. Rows are never
// updated or deleted by this service; the two reserved release columns are
// filled manually downstream.
type Ledger interface {
	Append(ctx context.Context, entry domain.LedgerEntry) error
	List(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}
