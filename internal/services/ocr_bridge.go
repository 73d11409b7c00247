package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/metrics"
	"github.com/foxxcyber/notes-bridge/internal/models"
)

// OCRBridgeClient uploads raw file bytes to the OCR bridge as multipart form data
type OCRBridgeClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewOCRBridgeClient creates a new OCR bridge client
func NewOCRBridgeClient(endpoint string, timeout time.Duration) *OCRBridgeClient {
	return &OCRBridgeClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Extract posts the upload under the "file" field and returns the bridge's text field
func (s *OCRBridgeClient) Extract(ctx context.Context, upload *models.Upload) (text string, err error) {
	const op = "ocr.Extract"
	log := logger.WithComponent("ocr-bridge")

	if s.endpoint == "" {
		return "", NewUpstreamError(op, ErrUpstreamNotConfigured, "OCR_URL")
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.UpstreamOCRBridge, start, err) }()

	body, contentType, err := multipartFile("file", upload)
	if err != nil {
		return "", NewUpstreamError(op, err, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return "", NewUpstreamError(op, fmt.Errorf("failed to create request: %w", err), "")
	}
	req.Header.Set("Content-Type", contentType)

	log.Info().Str("url", s.endpoint).Int("bytes", upload.Size()).Msg("Sending to OCR service")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", NewUpstreamError(op, err, "")
	}
	defer resp.Body.Close()

	raw, err := readUpstreamBody(op, resp)
	if err != nil {
		return "", err
	}

	var parsed models.BridgeOCRResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", NewUpstreamError(op, ErrMalformedResponse, err.Error())
	}

	log.Info().
		Int("chars", len(parsed.Text)).
		Str("preview", logger.Preview(parsed.Text, 100)).
		Msg("OCR extracted text")

	return parsed.Text, nil
}

// multipartFile builds a multipart body holding a single file part
func multipartFile(field string, upload *models.Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(upload.FilenameOrDefault())))
	header.Set("Content-Type", upload.ContentTypeOrDefault())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
