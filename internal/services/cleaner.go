package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/foxxcyber/notes-bridge/internal/logger"
	"github.com/foxxcyber/notes-bridge/internal/metrics"
	"github.com/foxxcyber/notes-bridge/internal/models"
)

// Cleaner posts OCR text to the cleaning webhook
type Cleaner struct {
	endpoint    string
	fields      []string
	nestedField string
	httpClient  *http.Client
}

// NewCleaner creates a new cleaning webhook client. fields is the ordered list of
// response fields checked for the cleaned text; nestedField is looked up one level
// deeper when the winning field holds an object.
func NewCleaner(endpoint string, fields []string, nestedField string, timeout time.Duration) *Cleaner {
	return &Cleaner{
		endpoint:    endpoint,
		fields:      fields,
		nestedField: nestedField,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Clean sends text to the webhook and returns the cleaned text, or text itself
// when the response carries none of the known fields
func (s *Cleaner) Clean(ctx context.Context, text string) (cleaned string, err error) {
	const op = "clean"
	log := logger.WithComponent("cleaner")

	if s.endpoint == "" {
		return "", NewUpstreamError(op, ErrUpstreamNotConfigured, "LANGFLOW_URL")
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.UpstreamCleaner, start, err) }()

	payload, err := json.Marshal(models.CleanRequest{Text: text})
	if err != nil {
		return "", NewUpstreamError(op, fmt.Errorf("failed to encode request: %w", err), "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", NewUpstreamError(op, fmt.Errorf("failed to create request: %w", err), "")
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Str("url", s.endpoint).Int("chars", len(text)).Msg("Sending to cleaning webhook")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", NewUpstreamError(op, err, "")
	}
	defer resp.Body.Close()

	log.Info().Int("status", resp.StatusCode).Msg("Cleaning webhook responded")

	raw, err := readUpstreamBody(op, resp)
	if err != nil {
		return "", err
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", NewUpstreamError(op, ErrMalformedResponse, err.Error())
	}

	cleaned = NormalizeCleaned(body, text, s.fields, s.nestedField)
	log.Info().Int("chars", len(cleaned)).Msg("Cleaned text ready")

	return cleaned, nil
}

// NormalizeCleaned extracts cleaned text from a decoded webhook response.
//
// A JSON string is used as-is. For an object, the first field in fields holding a
// non-empty value wins; if that value is an object its nested field is used instead.
// Any other shape, or no winning field, yields fallback. Winning values that are
// not strings (numbers, booleans, arrays) are returned as their JSON encoding.
func NormalizeCleaned(body any, fallback string, fields []string, nested string) string {
	switch v := body.(type) {
	case string:
		return v
	case map[string]any:
		for _, field := range fields {
			value, ok := v[field]
			if !ok || isEmptyJSON(value) {
				continue
			}
			if obj, ok := value.(map[string]any); ok {
				inner, ok := obj[nested]
				if !ok {
					return fallback
				}
				return jsonText(inner)
			}
			return jsonText(value)
		}
	}
	return fallback
}

// isEmptyJSON reports whether a decoded JSON value is null, false, zero or empty
func isEmptyJSON(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// jsonText returns strings unchanged and encodes any other value as JSON
func jsonText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}
