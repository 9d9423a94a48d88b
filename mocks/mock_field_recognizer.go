package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// MockFieldRecognizer is a mock implementation of port.FieldRecognizer.
type MockFieldRecognizer struct {
	mock.Mock
}

func (m *MockFieldRecognizer) RecognizeFields(ctx context.Context, imageBytes []byte) *domain.Candidate {
	args := m.Called(ctx, imageBytes)
	if args.Get(0) == nil {
		return &domain.Candidate{}
	}
	return args.Get(0).(*domain.Candidate)
}
