package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

type localStorage struct {
	baseDir string
}

// NewLocalStorage creates a filesystem-backed image archive rooted at
// baseDir. The bucket in UploadInput becomes a subdirectory.
func NewLocalStorage(baseDir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &localStorage{baseDir: baseDir}, nil
}

func (s *localStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	path := filepath.Join(s.baseDir, input.Bucket, input.Key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("local upload mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("local upload create: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, input.Body); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("local upload write: %w", err)
	}

	return &port.UploadOutput{Location: path}, nil
}

func (s *localStorage) Delete(ctx context.Context, bucket, key string) error {
	path := filepath.Join(s.baseDir, bucket, key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
