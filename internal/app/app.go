// Package app wires configuration into the bridge services shared by the server
// and the extract command.
package app

import (
	"fmt"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/handlers"
	"github.com/foxxcyber/notes-bridge/internal/services"
	"github.com/foxxcyber/notes-bridge/internal/services/tesseract"
)

// NewExtractor returns the OCR backend used by the direct OCR route
func NewExtractor(cfg *config.Config) (services.TextExtractor, error) {
	switch cfg.OCRBackend {
	case config.BackendTesseract:
		engine, err := tesseract.New(cfg.OCRLanguage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tesseract: %w", err)
		}
		return engine, nil
	default:
		return services.NewOCRSpaceClient(cfg), nil
	}
}

// NewPipeline returns the OCR bridge + cleaning webhook pipeline
func NewPipeline(cfg *config.Config) *services.Pipeline {
	return services.NewPipeline(
		services.NewOCRBridgeClient(cfg.OCRURL, cfg.PipelineTimeout),
		services.NewCleaner(cfg.LangflowURL, cfg.CleanFields, cfg.CleanNestedField, cfg.PipelineTimeout),
	)
}

// NewHandler builds the HTTP handler with every dependency
func NewHandler(cfg *config.Config) (*handlers.Handler, error) {
	extractor, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	return handlers.New(cfg, extractor, NewPipeline(cfg)), nil
}
