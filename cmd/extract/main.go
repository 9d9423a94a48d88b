// Command extract runs the extraction pipeline over a single label photo and
// prints the resulting record as JSON. Useful for tuning recognition without
// running the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/blacks1k-sc/ParcelVision/internal/config"
	"github.com/blacks1k-sc/ParcelVision/internal/extract"
	"github.com/blacks1k-sc/ParcelVision/internal/extract/gemini"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
	"github.com/blacks1k-sc/ParcelVision/internal/tessocr"
)

func main() {
	_ = godotenv.Load()

	localOnly := flag.Bool("local-only", false, "skip the remote vision call and use only local recognition")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: extract [-local-only] <image.jpg>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *localOnly); err != nil {
		log.Fatal(err)
	}
}

func run(path string, localOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	imageBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	var remote port.VisionExtractor
	if !localOnly {
		switch cfg.Vision.Provider {
		case "none":
			// Configured local-only; same as passing -local-only.
		case "gemini":
			remote, err = gemini.NewExtractor(&cfg.Vision)
			if err != nil {
				return fmt.Errorf("failed to initialize vision extractor: %w", err)
			}
		default:
			return fmt.Errorf("unknown vision provider %q", cfg.Vision.Provider)
		}
	}

	var engine port.TextRecognizer
	if cfg.OCR.Enabled {
		engine = tessocr.NewEngine(cfg.OCR.Languages)
	}
	local := extract.NewLocalRecognizer(engine, cfg.OCR.MaxDim)

	extractor := extract.NewExtractor(remote, local)
	record := extractor.Extract(context.Background(), imageBytes, http.DetectContentType(imageBytes))

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
