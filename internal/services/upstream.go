package services

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxUpstreamBody caps how much of an upstream response is read into memory
const maxUpstreamBody = 32 << 20

// readUpstreamBody reads a response body and rejects non-2xx statuses
func readUpstreamBody(op string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, NewUpstreamError(op, fmt.Errorf("failed to read response: %w", err), "")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewUpstreamError(op, ErrUpstreamStatus, fmt.Sprintf("%s: %s", resp.Status, snippet(body)))
	}

	return body, nil
}

// snippet trims an upstream body for error messages
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
