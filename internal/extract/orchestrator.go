package extract

import (
	"context"
	"log"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

// Extractor coordinates the extraction strategies: the remote vision model
// first, then field-by-field backfill from local recognition, then
// normalization. Its Extract method never fails for image-content reasons;
// in the worst case every field defaults to its sentinel.
type Extractor struct {
	remote port.VisionExtractor
	local  port.FieldRecognizer
}

// NewExtractor creates the extraction orchestrator.
func NewExtractor(remote port.VisionExtractor, local port.FieldRecognizer) *Extractor {
	return &Extractor{remote: remote, local: local}
}

// Extract converts a label photograph into a normalized ParcelRecord.
// Remote wins over local for every field both strategies populate; local
// only fills gaps, and a backfill never downgrades a real value to a
// sentinel.
func (e *Extractor) Extract(ctx context.Context, imageBytes []byte, contentType string) domain.ParcelRecord {
	working := domain.Candidate{}

	if e.remote != nil {
		remote, err := e.remote.Extract(ctx, port.VisionInput{
			ImageBytes:  imageBytes,
			ContentType: contentType,
		})
		if err != nil {
			log.Printf("extract.Extractor: remote extraction failed, falling back to local: %v", err)
		} else {
			working = *remote
		}
	}

	if e.local != nil && hasMissingField(working) {
		backfill(&working, e.local.RecognizeFields(ctx, imageBytes))
	}

	return Normalize(working)
}

func hasMissingField(c domain.Candidate) bool {
	return fieldMissing(c.Unit, domain.UnknownValue) ||
		fieldMissing(c.Name, domain.UnknownValue) ||
		fieldMissing(c.Supplier, domain.SupplierOther) ||
		fieldMissing(c.ParcelType, domain.UnknownValue)
}

// backfill copies local values into fields the working record is still
// missing. A field holding its miss sentinel counts as missing; a sentinel
// coming from the local side never overwrites anything.
func backfill(working *domain.Candidate, local *domain.Candidate) {
	if local == nil {
		return
	}
	fillField(&working.Unit, local.Unit, domain.UnknownValue)
	fillField(&working.Name, local.Name, domain.UnknownValue)
	fillField(&working.Supplier, local.Supplier, domain.SupplierOther)
	fillField(&working.ParcelType, local.ParcelType, domain.UnknownValue)
}

func fillField(dst *string, src, sentinel string) {
	if !fieldMissing(*dst, sentinel) {
		return
	}
	if fieldMissing(src, sentinel) {
		return
	}
	*dst = src
}

func fieldMissing(v, sentinel string) bool {
	return v == "" || v == sentinel
}
