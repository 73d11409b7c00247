package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamNotConfigured is returned when the target URL of a hop is empty.
	ErrUpstreamNotConfigured = errors.New("upstream URL is not configured")

	// ErrUpstreamStatus is returned when an upstream answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned an error status")

	// ErrMalformedResponse is returned when an upstream body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrOCRFailed is returned when the OCR provider reports a processing error.
	ErrOCRFailed = errors.New("OCR processing failed")
)

// UpstreamError wraps a failed upstream call with the operation that failed.
type UpstreamError struct {
	// Op is the operation that failed (e.g. "ocr.ProcessFile", "clean").
	Op string

	// Err is the underlying error.
	Err error

	// Details carries upstream-provided context such as a status line.
	Details string
}

func (e *UpstreamError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(op string, err error, details string) *UpstreamError {
	return &UpstreamError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
