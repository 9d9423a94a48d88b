package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

var headerRow = []interface{}{
	"Timestamp", "Unit", "Name", "Supplier", "Parcel Type", "Released?", "Released Time",
}

// Ledger is the workbook-backed parcel ledger. The workbook is opened or
// created lazily per operation and a mutex serializes access; the workbook
// file on disk is the source of truth between calls.
type Ledger struct {
	path  string
	sheet string
	mu    sync.Mutex
}

// NewLedger creates an xlsx-backed ledger writing to the given workbook
// path and sheet. The parent directory is created if missing.
func NewLedger(path, sheet string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}
	return &Ledger{path: path, sheet: sheet}, nil
}

var _ port.Ledger = (*Ledger)(nil)

// Append adds one row after the last filled row of the sheet. The row is
// written and saved before Append returns; a failed save surfaces as
// domain.ErrLedgerAppend and the caller decides whether to continue.
func (l *Ledger) Append(ctx context.Context, entry domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.openOrCreate()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerAppend, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(l.sheet)
	if err != nil {
		return fmt.Errorf("%w: reading sheet: %v", domain.ErrLedgerAppend, err)
	}
	next := lastFilledRow(rows) + 1

	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerAppend, err)
	}
	row := []interface{}{
		entry.Timestamp, entry.Unit, entry.Name, entry.Supplier,
		entry.ParcelType, entry.Released, entry.ReleasedTime,
	}
	if err := f.SetSheetRow(l.sheet, cell, &row); err != nil {
		return fmt.Errorf("%w: writing row: %v", domain.ErrLedgerAppend, err)
	}

	if err := f.SaveAs(l.path); err != nil {
		return fmt.Errorf("%w: saving workbook: %v", domain.ErrLedgerAppend, err)
	}
	return nil
}

// List returns the most recent entries, newest first. A zero or negative
// limit means all entries.
func (l *Ledger) List(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(l.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	var entries []domain.LedgerEntry
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		entries = append(entries, rowToEntry(row))
	}

	// Newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (l *Ledger) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		idx, err := f.NewSheet(l.sheet)
		if err != nil {
			return nil, fmt.Errorf("creating sheet: %w", err)
		}
		f.SetActiveSheet(idx)
		if l.sheet != "Sheet1" {
			_ = f.DeleteSheet("Sheet1")
		}
		if err := f.SetSheetRow(l.sheet, "A1", &headerRow); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
		return f, nil
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if idx, err := f.GetSheetIndex(l.sheet); err != nil || idx < 0 {
		nidx, nerr := f.NewSheet(l.sheet)
		if nerr != nil {
			_ = f.Close()
			return nil, fmt.Errorf("creating sheet: %w", nerr)
		}
		f.SetActiveSheet(nidx)
		if err := f.SetSheetRow(l.sheet, "A1", &headerRow); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}
	return f, nil
}

// lastFilledRow finds the last row with a non-empty first column. Rows the
// workbook reports past the data region count only if column A is filled.
func lastFilledRow(rows [][]string) int {
	last := 0
	for i, row := range rows {
		if len(row) > 0 && row[0] != "" {
			last = i + 1
		}
	}
	if last == 0 {
		return 1 // header row position when the sheet is empty
	}
	return last
}

func rowToEntry(row []string) domain.LedgerEntry {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return domain.LedgerEntry{
		Timestamp:    get(0),
		Unit:         get(1),
		Name:         get(2),
		Supplier:     get(3),
		ParcelType:   get(4),
		Released:     get(5),
		ReleasedTime: get(6),
	}
}
