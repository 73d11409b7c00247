package services

import (
	"context"

	"github.com/foxxcyber/notes-bridge/internal/models"
)

// TextSource extracts raw text from an upload (first pipeline hop)
type TextSource interface {
	Extract(ctx context.Context, upload *models.Upload) (string, error)
}

// TextCleaner reformats extracted text (second pipeline hop)
type TextCleaner interface {
	Clean(ctx context.Context, text string) (string, error)
}

// PipelineResult holds both the cleaned and the raw OCR text
type PipelineResult struct {
	Cleaned string
	RawOCR  string
}

// Pipeline chains the OCR bridge and the cleaning webhook
type Pipeline struct {
	source  TextSource
	cleaner TextCleaner
}

// NewPipeline creates a new upload pipeline
func NewPipeline(source TextSource, cleaner TextCleaner) *Pipeline {
	return &Pipeline{
		source:  source,
		cleaner: cleaner,
	}
}

// Run extracts text from the upload and cleans it. Any failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, upload *models.Upload) (*PipelineResult, error) {
	raw, err := p.source.Extract(ctx, upload)
	if err != nil {
		return nil, err
	}

	cleaned, err := p.cleaner.Clean(ctx, raw)
	if err != nil {
		return nil, err
	}

	return &PipelineResult{
		Cleaned: cleaned,
		RawOCR:  raw,
	}, nil
}
