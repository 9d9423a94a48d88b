package domain

import "time"

// ParcelRecord is the canonical output of the extraction pipeline. All four
// fields are always present and non-empty; absence is expressed through the
// sentinel values, never through an empty string.
type ParcelRecord struct {
	Unit       string `json:"unit"`
	Name       string `json:"name"`
	Supplier   string `json:"supplier"`
	ParcelType string `json:"parcel_type"`
}

// Complete reports whether every field carries a real value rather than a
// miss sentinel.
func (r ParcelRecord) Complete() bool {
	return r.Unit != "" && r.Unit != UnknownValue &&
		r.Name != "" && r.Name != UnknownValue &&
		r.Supplier != "" && r.Supplier != SupplierOther &&
		r.ParcelType != ""
}

// Candidate is a partial recognition result produced independently by each
// extraction strategy. An empty field means the strategy produced nothing
// for it; sentinel values count as misses during merging. Candidates never
// leave the extraction orchestrator.
type Candidate struct {
	Unit       string
	Name       string
	Supplier   string
	ParcelType string
}

// LedgerEntry is one append-only row in the parcel ledger. Released and
// ReleasedTime are reserved for the manual release workflow and are written
// empty.
type LedgerEntry struct {
	Timestamp    string `db:"logged_at" json:"timestamp"`
	Unit         string `db:"unit" json:"unit"`
	Name         string `db:"name" json:"name"`
	Supplier     string `db:"supplier" json:"supplier"`
	ParcelType   string `db:"parcel_type" json:"parcel_type"`
	Released     string `db:"released" json:"released"`
	ReleasedTime string `db:"released_time" json:"released_time"`
}

// PendingUnit is an entry in the valet hand-off queue, waiting for the
// polling browser script to register it downstream.
type PendingUnit struct {
	Unit       string    `json:"unit"`
	Name       string    `json:"name"`
	Supplier   string    `json:"supplier"`
	ParcelType string    `json:"parcel_type"`
	Timestamp  string    `json:"timestamp"`
	EnqueuedAt time.Time `json:"-"`
}
