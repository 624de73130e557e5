// Package models defines the request and response bodies exchanged with
// clients of the sentiment service.
package models

// AnalyzeRequest is the body of a single analysis request.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// BatchRequest is the body of a batch analysis request.
type BatchRequest struct {
	Texts []string `json:"texts"`
}

// Envelope wraps every successful response.
type Envelope struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes who produced a response and when.
type Metadata struct {
	Model     string `json:"model"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// AnalyzeData is the payload of a successful single analysis.
type AnalyzeData struct {
	// InputText echoes the analyzed text, truncated for display.
	InputText        string  `json:"input_text"`
	Sentiment        string  `json:"sentiment"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

// BatchItemResult is the outcome of one batch element. Failed items carry
// Error and explicit null sentiment and confidence.
type BatchItemResult struct {
	Index            int      `json:"index"`
	TextPreview      string   `json:"text_preview,omitempty"`
	Sentiment        *string  `json:"sentiment"`
	Confidence       *float64 `json:"confidence"`
	ProcessingTimeMs *float64 `json:"processing_time_ms,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// BatchSummary aggregates a processed batch.
type BatchSummary struct {
	TotalTexts            int     `json:"total_texts"`
	Successful            int     `json:"successful"`
	TotalProcessingTimeMs float64 `json:"total_processing_time_ms"`
}

// BatchData is the payload of a successful batch analysis.
type BatchData struct {
	Results []BatchItemResult `json:"results"`
	Summary BatchSummary      `json:"summary"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	Timestamp  string `json:"timestamp"`
	Classifier string `json:"classifier"`
}

// RootInfo documents the API at the service root.
type RootInfo struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Example     map[string]any    `json:"example"`
}
