package port

import (
	"context"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

// VisionInput carries an encoded label photograph for remote extraction.
type VisionInput struct {
	ImageBytes  []byte
	ContentType string
}

// VisionExtractor abstracts the remote multimodal model call. Implementations
// return a partial Candidate with sentinel values for fields the model could
// not determine, or an error wrapping domain.ErrRemoteExtraction.
type VisionExtractor interface {
	Extract(ctx context.Context, input VisionInput) (*domain.Candidate, error)
}

// FieldRecognizer abstracts the local OCR + classifier fallback strategy.
// Implementations never fail for image-content reasons: fields the strategy
// could not determine are left empty in the Candidate.
type FieldRecognizer interface {
	RecognizeFields(ctx context.Context, imageBytes []byte) *domain.Candidate
}
