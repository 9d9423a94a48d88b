package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/blacks1k-sc/ParcelVision/internal/config"
	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
	"github.com/blacks1k-sc/ParcelVision/internal/validator"
)

// ledgerTimeLayout is the human-facing timestamp written to the ledger and
// sent to the valet queue.
const ledgerTimeLayout = "01/02/2006 15:04:05"

// archiveTimeLayout prefixes archived image filenames so they sort
// chronologically.
const archiveTimeLayout = "2006-01-02_15-04-05"

// ParcelUploadInput is the DTO for label photo uploads.
type ParcelUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ParcelUploadResult reports the outcome of one processed upload.
type ParcelUploadResult struct {
	Record      domain.ParcelRecord `json:"record"`
	ValetStatus domain.ValetStatus  `json:"valet_status"`
	Message     string              `json:"message,omitempty"`
	Timestamp   string              `json:"timestamp"`
	ImageKey    string              `json:"image_key"`
	Validation  validator.Report    `json:"validation"`
}

// FieldExtractor turns a label photo into a normalized parcel record.
// Implemented by the extraction orchestrator.
type FieldExtractor interface {
	Extract(ctx context.Context, imageBytes []byte, contentType string) domain.ParcelRecord
}

// ParcelService defines the upload processing contract.
type ParcelService interface {
	ProcessUpload(ctx context.Context, input ParcelUploadInput) (*ParcelUploadResult, error)
	ListEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}

type parcelService struct {
	extractor FieldExtractor
	validate  *validator.Engine
	ledger    port.Ledger
	queue     port.PendingQueue
	storage   port.ObjectStorage
	alerts    port.AlertSender
	cfg       *config.StorageConfig
	now       func() time.Time
}

// NewParcelService creates the upload processing service.
func NewParcelService(
	extractor FieldExtractor,
	validate *validator.Engine,
	ledger port.Ledger,
	queue port.PendingQueue,
	storage port.ObjectStorage,
	alerts port.AlertSender,
	cfg *config.StorageConfig,
) ParcelService {
	return &parcelService{
		extractor: extractor,
		validate:  validate,
		ledger:    ledger,
		queue:     queue,
		storage:   storage,
		alerts:    alerts,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ProcessUpload runs the full pipeline for one label photo: validate,
// extract, archive, append to the ledger, then queue or alert. The extraction
// itself never fails; an error return means the upload was rejected or the
// ledger could not be written.
func (s *parcelService) ProcessUpload(ctx context.Context, input ParcelUploadInput) (*ParcelUploadResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	imageBytes, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(imageBytes)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	detectedType := http.DetectContentType(imageBytes)
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	now := s.now()
	record := s.extractor.Extract(ctx, imageBytes, detectedType)

	log.Printf("parcelService.ProcessUpload: extracted unit=%s name=%s supplier=%s parcel_type=%s",
		record.Unit, record.Name, record.Supplier, record.ParcelType)

	report := s.validate.ValidateRecord(record)
	if report.Status != validator.StatusValid {
		log.Printf("parcelService.ProcessUpload: record validation status=%s", report.Status)
	}

	imageKey := buildArchiveFilename(now, record, ext)
	if err := s.archive(ctx, imageKey, imageBytes, detectedType); err != nil {
		// Archival is best effort. The record is still logged and queued.
		log.Printf("parcelService.ProcessUpload: %v: %v", domain.ErrArchiveFailed, err)
		imageKey = ""
	}

	timestamp := now.Format(ledgerTimeLayout)
	entry := domain.LedgerEntry{
		Timestamp:  timestamp,
		Unit:       record.Unit,
		Name:       record.Name,
		Supplier:   record.Supplier,
		ParcelType: record.ParcelType,
	}
	if err := s.ledger.Append(ctx, entry); err != nil {
		log.Printf("parcelService.ProcessUpload: ledger append failed: %v", err)
		return nil, err
	}

	result := &ParcelUploadResult{
		Record:     record,
		Timestamp:  timestamp,
		ImageKey:   imageKey,
		Validation: report,
	}

	if report.Failed(validator.RuleUnitRecognized) {
		result.ValetStatus = domain.ValetStatusError
		result.Message = "unit not recognized, register manually"
		if err := s.alerts.SendManualReviewAlert(ctx, record); err != nil {
			log.Printf("parcelService.ProcessUpload: manual review alert failed: %v", err)
		}
		return result, nil
	}

	s.queue.Enqueue(domain.PendingUnit{
		Unit:       record.Unit,
		Name:       record.Name,
		Supplier:   record.Supplier,
		ParcelType: record.ParcelType,
		Timestamp:  timestamp,
		EnqueuedAt: now,
	})
	result.ValetStatus = domain.ValetStatusQueued
	return result, nil
}

func (s *parcelService) ListEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	return s.ledger.List(ctx, limit)
}

func (s *parcelService) archive(ctx context.Context, key string, imageBytes []byte, contentType string) error {
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(imageBytes),
		ContentType: contentType,
		Size:        int64(len(imageBytes)),
	})
	return err
}

// buildArchiveFilename produces the archived image name:
// {timestamp}_{unit}_{name}_{supplier}_{parcel_type}.{ext}. Spaces become
// underscores and slashes become hyphens so the key stays path safe.
func buildArchiveFilename(t time.Time, record domain.ParcelRecord, ext string) string {
	name := fmt.Sprintf("%s_%s_%s_%s_%s.%s",
		t.Format(archiveTimeLayout),
		record.Unit, record.Name, record.Supplier, record.ParcelType, ext)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "-")
	return name
}
