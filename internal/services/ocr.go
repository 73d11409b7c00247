package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/metrics"
	"github.com/foxxcyber/notes-bridge/internal/models"
)

// TextExtractor turns an uploaded file into plain text
type TextExtractor interface {
	ProcessFile(ctx context.Context, upload *models.Upload) (*OCRResult, error)
}

// OCRResult contains the OCR processing result
type OCRResult struct {
	Text      string
	PageCount int
}

// OCRSpaceClient submits base64 encoded files to the OCR provider
type OCRSpaceClient struct {
	endpoint   string
	apiKey     string
	language   string
	engine     string
	httpClient *http.Client
}

// NewOCRSpaceClient creates a new OCR provider client
func NewOCRSpaceClient(cfg *config.Config) *OCRSpaceClient {
	return &OCRSpaceClient{
		endpoint: cfg.OCRProviderURL,
		apiKey:   cfg.OCRAPIKey,
		language: cfg.OCRLanguage,
		engine:   cfg.OCREngine,
		httpClient: &http.Client{
			Timeout: cfg.OCRTimeout,
		},
	}
}

// ProcessFile sends the upload as a data URI and joins the text of every parsed page
func (s *OCRSpaceClient) ProcessFile(ctx context.Context, upload *models.Upload) (result *OCRResult, err error) {
	const op = "ocr.ProcessFile"
	log := logger.WithComponent("ocr")

	if s.endpoint == "" {
		return nil, NewUpstreamError(op, ErrUpstreamNotConfigured, "OCR_PROVIDER_URL")
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.UpstreamOCRProvider, start, err) }()

	data := url.Values{}
	data.Set("apikey", s.apiKey)
	data.Set("base64Image", DataURI(upload.ContentTypeOrDefault(), upload.Data))
	data.Set("language", s.language)
	data.Set("OCREngine", s.engine)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, NewUpstreamError(op, fmt.Errorf("failed to create request: %w", err), "")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Debug().Str("url", s.endpoint).Int("bytes", upload.Size()).Msg("Sending file to OCR provider")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, NewUpstreamError(op, err, "")
	}
	defer resp.Body.Close()

	body, err := readUpstreamBody(op, resp)
	if err != nil {
		return nil, err
	}

	var parsed models.ProviderResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, NewUpstreamError(op, ErrMalformedResponse, err.Error())
	}

	if parsed.IsErroredOnProcessing {
		log.Warn().Interface("provider_error", parsed.ErrorMessage).Msg("OCR provider reported a processing error")
	}

	text := JoinParsedResults(parsed.ParsedResults)
	log.Info().Int("pages", len(parsed.ParsedResults)).Int("chars", len(text)).Msg("OCR provider extracted text")

	return &OCRResult{
		Text:      text,
		PageCount: len(parsed.ParsedResults),
	}, nil
}

// DataURI encodes data as a base64 data URI
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// JoinParsedResults concatenates page texts in order, one newline after each, then trims
func JoinParsedResults(results []models.ParsedResult) string {
	var sb strings.Builder
	for _, page := range results {
		sb.WriteString(page.ParsedText)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
