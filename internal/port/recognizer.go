package port

import "context"

// TextRecognizer abstracts a local OCR engine: one preprocessed image in,
// one raw text blob out. Backed by Tesseract in production and by a
// deterministic stub in tests.
type TextRecognizer interface {
	Recognize(ctx context.Context, imageBytes []byte) (string, error)
}
