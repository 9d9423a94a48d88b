package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

type parcelLedger struct {
	db *sqlx.DB
}

// NewParcelLedger creates a PostgreSQL-backed parcel ledger.
func NewParcelLedger(db *sqlx.DB) port.Ledger {
	return &parcelLedger{db: db}
}

func (l *parcelLedger) Append(ctx context.Context, entry domain.LedgerEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO parcel_entries (logged_at, unit, name, supplier, parcel_type, released, released_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.Timestamp, entry.Unit, entry.Name, entry.Supplier,
		entry.ParcelType, entry.Released, entry.ReleasedTime)
	if err != nil {
		return fmt.Errorf("%w: parcelLedger.Append: %v", domain.ErrLedgerAppend, err)
	}
	return nil
}

func (l *parcelLedger) List(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 1000
	}
	var entries []domain.LedgerEntry
	err := l.db.SelectContext(ctx, &entries,
		`SELECT logged_at, unit, name, supplier, parcel_type, released, released_time
		 FROM parcel_entries ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("parcelLedger.List: %w", err)
	}
	return entries, nil
}
