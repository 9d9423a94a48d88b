package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

func testEntry(unit string) domain.LedgerEntry {
	return domain.LedgerEntry{
		Timestamp:  "01/15/2026 14:30:00",
		Unit:       unit,
		Name:       "Jane Doe",
		Supplier:   "UPS",
		ParcelType: "BROWN BOX",
	}
}

func TestLedgerCreatesWorkbookWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.xlsx")
	l, err := NewLedger(path, "PACKAGES")
	require.NoError(t, err)

	require.NoError(t, l.Append(context.Background(), testEntry("604")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("PACKAGES")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Timestamp", rows[0][0])
	assert.Equal(t, "Parcel Type", rows[0][4])
	assert.Equal(t, "604", rows[1][1])
	assert.Equal(t, "Jane Doe", rows[1][2])
}

func TestLedgerAppendsAfterLastRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.xlsx")
	l, err := NewLedger(path, "PACKAGES")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, l.Append(ctx, testEntry("101")))
	require.NoError(t, l.Append(ctx, testEntry("202")))
	require.NoError(t, l.Append(ctx, testEntry("303")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("PACKAGES")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "101", rows[1][1])
	assert.Equal(t, "202", rows[2][1])
	assert.Equal(t, "303", rows[3][1])
}

func TestLedgerListNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.xlsx")
	l, err := NewLedger(path, "PACKAGES")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, l.Append(ctx, testEntry("101")))
	require.NoError(t, l.Append(ctx, testEntry("202")))

	entries, err := l.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "202", entries[0].Unit)
	assert.Equal(t, "101", entries[1].Unit)
}

func TestLedgerListLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.xlsx")
	l, err := NewLedger(path, "PACKAGES")
	require.NoError(t, err)

	ctx := context.Background()
	for _, u := range []string{"101", "202", "303"} {
		require.NoError(t, l.Append(ctx, testEntry(u)))
	}

	entries, err := l.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "303", entries[0].Unit)
}

func TestLedgerListMissingWorkbook(t *testing.T) {
	l, err := NewLedger(filepath.Join(t.TempDir(), "never-written.xlsx"), "PACKAGES")
	require.NoError(t, err)

	entries, err := l.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
