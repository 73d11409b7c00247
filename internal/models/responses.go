package models

// OCRResponse is returned by the direct OCR route
type OCRResponse struct {
	Text string `json:"text"`
}

// UploadResponse is returned by the upload pipeline routes
type UploadResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	RawOCR  string `json:"raw_ocr"`
}

// HealthStatus values
const (
	HealthStatusHealthy = "healthy"
)

// HealthResponse reports the configured upstreams without calling them
type HealthResponse struct {
	Status          string `json:"status"`
	OCRService      string `json:"ocr_service"`
	LangflowWebhook string `json:"langflow_webhook"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
