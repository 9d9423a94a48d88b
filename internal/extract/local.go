package extract

import (
	"context"
	"log"
	"strings"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

// LocalRecognizer is the deterministic fallback strategy: a local OCR pass
// over the preprocessed image, pattern-matched field by field, plus the
// color/texture classifier for the packaging. It implements
// port.FieldRecognizer.
type LocalRecognizer struct {
	engine port.TextRecognizer
	maxDim int
}

// NewLocalRecognizer creates a LocalRecognizer backed by the given OCR
// engine. A nil engine disables text recognition; the classifier still runs.
func NewLocalRecognizer(engine port.TextRecognizer, maxDim int) *LocalRecognizer {
	return &LocalRecognizer{engine: engine, maxDim: maxDim}
}

// RecognizeFields extracts whatever fields it can from the image. It never
// fails: recognition problems leave the corresponding fields empty and the
// normalizer fills sentinels downstream.
func (r *LocalRecognizer) RecognizeFields(ctx context.Context, imageBytes []byte) *domain.Candidate {
	c := &domain.Candidate{}

	if parcelType, err := ClassifyBytes(imageBytes); err != nil {
		log.Printf("extract.LocalRecognizer: classify failed: %v", err)
	} else {
		c.ParcelType = parcelType
	}

	text, err := r.recognizeText(ctx, imageBytes)
	if err != nil {
		log.Printf("extract.LocalRecognizer: %v: %v", domain.ErrLocalRecognition, err)
		return c
	}

	c.Supplier = matchSupplier(text)
	c.Name = matchName(text)
	c.Unit = matchUnit(text)
	return c
}

func (r *LocalRecognizer) recognizeText(ctx context.Context, imageBytes []byte) (string, error) {
	if r.engine == nil {
		return "", domain.ErrLocalRecognition
	}
	prepared, err := preprocessForOCR(imageBytes, r.maxDim)
	if err != nil {
		return "", err
	}
	text, err := r.engine.Recognize(ctx, prepared)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(text), nil
}
