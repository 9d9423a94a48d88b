package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// MockAlertSender is a mock implementation of port.AlertSender.
type MockAlertSender struct {
	mock.Mock
}

func (m *MockAlertSender) SendManualReviewAlert(ctx context.Context, record domain.ParcelRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAlertSender) SendStaleQueueAlert(ctx context.Context, units []domain.PendingUnit) error {
	args := m.Called(ctx, units)
	return args.Error(0)
}
