package port

import (
	"context"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// AlertSender notifies building staff about parcels that need manual
// attention.
type AlertSender interface {
	// SendManualReviewAlert is raised when a parcel resolves without a
	// recognizable unit and cannot be queued for the valet hand-off.
	SendManualReviewAlert(ctx context.Context, record domain.ParcelRecord) error
	// SendStaleQueueAlert reports units that have been pending longer than
	// the configured threshold.
	SendStaleQueueAlert(ctx context.Context, units []domain.PendingUnit) error
}
