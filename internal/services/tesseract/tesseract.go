//go:build !windows

// Package tesseract runs uploads through a local Tesseract engine instead of the
// remote OCR provider.
package tesseract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/metrics"
	"github.com/foxxcyber/notes-bridge/internal/models"
	"github.com/foxxcyber/notes-bridge/internal/services"
)

// Engine handles optical character recognition with Tesseract
type Engine struct {
	language string
}

// New creates a new Tesseract engine for the given language (e.g. "eng")
func New(language string) (*Engine, error) {
	if language == "" {
		return nil, fmt.Errorf("tesseract: language is required")
	}
	return &Engine{language: language}, nil
}

// ProcessFile recognizes the text of an image upload.
// A client is created per call since gosseract clients are not safe for concurrent use.
func (e *Engine) ProcessFile(ctx context.Context, upload *models.Upload) (result *services.OCRResult, err error) {
	if err := checkFormat(upload); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.UpstreamTesseract, start, err) }()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// PSM 3 = Fully automatic page segmentation, suited to notes and book pages
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	if err := client.SetImageFromBytes(upload.Data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrOCRFailed, err)
	}

	text = strings.TrimSpace(text)
	log := logger.WithComponent("tesseract")
	log.Info().Int("chars", len(text)).Msg("Tesseract extracted text")

	return &services.OCRResult{
		Text:      text,
		PageCount: 1,
	}, nil
}
