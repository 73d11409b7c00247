//go:build windows

package tesseract

import (
	"context"
	"errors"

	"github.com/foxxcyber/notes-bridge/internal/models"
	"github.com/foxxcyber/notes-bridge/internal/services"
)

// Engine handles optical character recognition (stub for Windows)
type Engine struct{}

// New creates a new Tesseract engine (not available on Windows)
func New(language string) (*Engine, error) {
	return nil, errors.New("tesseract OCR is not available on Windows - run in Docker container")
}

// ProcessFile recognizes the text of an image upload
func (e *Engine) ProcessFile(ctx context.Context, upload *models.Upload) (*services.OCRResult, error) {
	return nil, errors.New("tesseract OCR is not available on Windows")
}
