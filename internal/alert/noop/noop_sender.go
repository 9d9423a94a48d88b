package noop

import (
	"context"
	"log"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op AlertSender that logs alerts to stdout.
func NewNoopSender() port.AlertSender {
	return &noopSender{}
}

func (s *noopSender) SendManualReviewAlert(_ context.Context, record domain.ParcelRecord) error {
	log.Printf("[NOOP ALERT] Manual review needed: unit=%s name=%s supplier=%s parcel_type=%s",
		record.Unit, record.Name, record.Supplier, record.ParcelType)
	return nil
}

func (s *noopSender) SendStaleQueueAlert(_ context.Context, units []domain.PendingUnit) error {
	log.Printf("[NOOP ALERT] %d unit(s) pending past the stale threshold", len(units))
	return nil
}
