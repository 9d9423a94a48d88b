package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// MockLedger is a mock implementation of port.Ledger.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Append(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedger) List(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
