package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	noopalert "github.com/blacks1k-sc/ParcelVision/internal/alert/noop"
	sesalert "github.com/blacks1k-sc/ParcelVision/internal/alert/ses"
	"github.com/blacks1k-sc/ParcelVision/internal/config"
	"github.com/blacks1k-sc/ParcelVision/internal/extract"
	"github.com/blacks1k-sc/ParcelVision/internal/extract/gemini"
	"github.com/blacks1k-sc/ParcelVision/internal/handler"
	pgledger "github.com/blacks1k-sc/ParcelVision/internal/ledger/postgres"
	xlsxledger "github.com/blacks1k-sc/ParcelVision/internal/ledger/xlsx"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
	"github.com/blacks1k-sc/ParcelVision/internal/queue/memory"
	"github.com/blacks1k-sc/ParcelVision/internal/router"
	"github.com/blacks1k-sc/ParcelVision/internal/service"
	localstorage "github.com/blacks1k-sc/ParcelVision/internal/storage/local"
	s3storage "github.com/blacks1k-sc/ParcelVision/internal/storage/s3"
	"github.com/blacks1k-sc/ParcelVision/internal/tessocr"
	"github.com/blacks1k-sc/ParcelVision/internal/validator"
)

func main() {
	// Load .env if present; real env vars take precedence.
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// buildVisionExtractor resolves the configured vision provider. Provider
// "gemini" without an API key is a configuration fault and aborts startup;
// "none" is the sanctioned local-only mode.
func buildVisionExtractor(cfg *config.VisionConfig) (port.VisionExtractor, error) {
	switch cfg.Provider {
	case "none":
		return nil, nil
	case "gemini":
		return gemini.NewExtractor(cfg)
	default:
		return nil, fmt.Errorf("unknown vision provider %q", cfg.Provider)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	remote, err := buildVisionExtractor(&cfg.Vision)
	if err != nil {
		return fmt.Errorf("failed to initialize vision extractor: %w", err)
	}
	if remote == nil {
		log.Println("main: vision provider disabled, running local-only")
	}

	var local port.FieldRecognizer
	if cfg.OCR.Enabled {
		local = extract.NewLocalRecognizer(tessocr.NewEngine(cfg.OCR.Languages), cfg.OCR.MaxDim)
	} else {
		local = extract.NewLocalRecognizer(nil, cfg.OCR.MaxDim)
	}
	extractor := extract.NewExtractor(remote, local)

	// Ledger backend
	var ledger port.Ledger
	var pinger handler.Pinger
	switch cfg.Ledger.Backend {
	case "postgres":
		db, err := pgledger.NewDB(&cfg.Ledger.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		ledger = pgledger.NewParcelLedger(db)
		pinger = db
	default:
		ledger, err = xlsxledger.NewLedger(cfg.Ledger.XLSXPath, cfg.Ledger.SheetName)
		if err != nil {
			return fmt.Errorf("failed to initialize xlsx ledger: %w", err)
		}
	}

	// Image archive backend
	var storage port.ObjectStorage
	switch cfg.Storage.Backend {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	default:
		storage, err = localstorage.NewLocalStorage(cfg.Storage.LocalDir)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	}

	// Alert sender
	var alerts port.AlertSender
	switch cfg.Alert.Provider {
	case "ses":
		alerts, err = sesalert.NewSESSender(cfg.Alert.Region, cfg.Alert.FromAddress, cfg.Alert.FromName, cfg.Alert.ToAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		alerts = noopalert.NewNoopSender()
	}

	queue := memory.NewQueue()

	// Services
	authSvc := service.NewAuthService(cfg.Auth)
	validate := validator.NewEngine(validator.NewDefaultRegistry())
	parcelSvc := service.NewParcelService(extractor, validate, ledger, queue, storage, alerts, &cfg.Storage)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	parcelH := handler.NewParcelHandler(parcelSvc)
	valetH := handler.NewValetHandler(queue)
	healthH := handler.NewHealthHandler(pinger)

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, parcelH, valetH, healthH)

	// Stale queue watcher
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := service.NewStaleQueueWorker(queue, alerts, service.StaleQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		StaleAfter:   time.Duration(cfg.Queue.StaleAfterMins) * time.Minute,
	})
	go worker.Start(ctx)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
