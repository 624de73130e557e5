// Package response builds the JSON bodies returned by the service: the
// success envelope with its metadata block and the error body.
package response

import (
	"time"

	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/models"
)

const (
	ServiceName = "Ciryx Vibe"
	Version     = "1.0.0"
)

// Composer stamps responses with the model identifier and the current time.
type Composer struct {
	model string
	now   func() time.Time
}

// NewComposer returns a Composer reporting model in every envelope.
func NewComposer(model string) *Composer {
	return &Composer{model: model, now: time.Now}
}

// Timestamp formats the current time as UTC RFC 3339 with nanoseconds.
func (c *Composer) Timestamp() string {
	return c.now().UTC().Format(time.RFC3339Nano)
}

// Success wraps data in a success envelope.
func (c *Composer) Success(data any, requestID string) models.Envelope {
	return models.Envelope{
		Success: true,
		Data:    data,
		Metadata: models.Metadata{
			Model:     c.model,
			Service:   ServiceName,
			Timestamp: c.Timestamp(),
			RequestID: requestID,
		},
	}
}

// Failure builds the error body for code.
func Failure(code Code) models.ErrorResponse {
	return models.ErrorResponse{Error: code.Message(), Code: string(code)}
}

// BatchFormatFailure is the error body for a texts field that is not an
// array.
func BatchFormatFailure() models.ErrorResponse {
	return models.ErrorResponse{Error: batchInvalidFormat, Code: string(InvalidFormat)}
}

// AnalyzeData converts a single analysis result, echoing at most
// service.InputTextLength characters of text.
func AnalyzeData(text string, r service.Result) models.AnalyzeData {
	return models.AnalyzeData{
		InputText:        service.Preview(text, service.InputTextLength),
		Sentiment:        string(r.Sentiment),
		Confidence:       r.Confidence,
		ProcessingTimeMs: r.ProcessingTimeMs,
	}
}

// BatchData converts a batch outcome. Results is never nil.
func BatchData(out service.BatchOutcome) models.BatchData {
	results := make([]models.BatchItemResult, 0, len(out.Results))

	for _, item := range out.Results {
		r := models.BatchItemResult{Index: item.Index}
		if item.Succeeded() {
			sentiment := string(item.Result.Sentiment)
			confidence := item.Result.Confidence
			elapsed := item.Result.ProcessingTimeMs

			r.TextPreview = item.TextPreview
			r.Sentiment = &sentiment
			r.Confidence = &confidence
			r.ProcessingTimeMs = &elapsed
		} else {
			r.Error = item.Err
		}
		results = append(results, r)
	}

	return models.BatchData{
		Results: results,
		Summary: models.BatchSummary{
			TotalTexts:            out.Summary.TotalTexts,
			Successful:            out.Summary.Successful,
			TotalProcessingTimeMs: out.Summary.TotalProcessingTimeMs,
		},
	}
}
