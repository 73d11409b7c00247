package models

// ParsedResult is one page of the OCR provider response
type ParsedResult struct {
	ParsedText string `json:"ParsedText"`
}

// ProviderResponse is the structured response of the OCR provider
type ProviderResponse struct {
	ParsedResults         []ParsedResult `json:"ParsedResults"`
	IsErroredOnProcessing bool           `json:"IsErroredOnProcessing,omitempty"`
	ErrorMessage          any            `json:"ErrorMessage,omitempty"`
}

// BridgeOCRResponse is the response of the OCR bridge used by the upload pipeline
type BridgeOCRResponse struct {
	Text string `json:"text"`
}

// CleanRequest is the body posted to the cleaning webhook
type CleanRequest struct {
	Text string `json:"text"`
}
