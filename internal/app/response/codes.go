package response

import (
	"errors"
	"net/http"

	"github.com/atinyakov/go-sentiment-service/internal/app/service"
)

// Code identifies a request failure. The set is closed: every Code has a
// status and a message.
type Code string

const (
	MissingText   Code = "MISSING_TEXT"
	EmptyText     Code = "EMPTY_TEXT"
	TextTooLong   Code = "TEXT_TOO_LONG"
	InvalidFormat Code = "INVALID_FORMAT"
	AnalysisError Code = "ANALYSIS_ERROR"
	MissingTexts  Code = "MISSING_TEXTS"
	BatchTooLarge Code = "BATCH_TOO_LARGE"
	BatchError    Code = "BATCH_ERROR"
)

type codeInfo struct {
	status  int
	message string
}

var codes = map[Code]codeInfo{
	MissingText:   {http.StatusBadRequest, "Missing required field: text"},
	EmptyText:     {http.StatusBadRequest, "Text cannot be empty"},
	TextTooLong:   {http.StatusBadRequest, "Text too long. Maximum 5000 characters."},
	InvalidFormat: {http.StatusBadRequest, "Invalid request format"},
	AnalysisError: {http.StatusInternalServerError, "Internal server error"},
	MissingTexts:  {http.StatusBadRequest, "Missing required field: texts (array)"},
	BatchTooLarge: {http.StatusBadRequest, "Maximum 100 texts per batch"},
	BatchError:    {http.StatusInternalServerError, "Internal server error"},
}

// batchInvalidFormat is the message used when texts is not an array.
const batchInvalidFormat = "texts must be an array"

// Status returns the HTTP status for c. Unknown codes map to 500.
func (c Code) Status() int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for c.
func (c Code) Message() string {
	if info, ok := codes[c]; ok {
		return info.message
	}
	return "Internal server error"
}

// AnalyzeCode maps an error from single analysis onto its Code. Anything
// unrecognised, including classifier faults and unreadable bodies, is an
// AnalysisError.
func AnalyzeCode(err error) Code {
	switch {
	case errors.Is(err, service.ErrMissingText):
		return MissingText
	case errors.Is(err, service.ErrEmptyText):
		return EmptyText
	case errors.Is(err, service.ErrTextTooLong):
		return TextTooLong
	default:
		return AnalysisError
	}
}

// BatchCode maps an error from batch analysis onto its Code.
func BatchCode(err error) Code {
	switch {
	case errors.Is(err, service.ErrMissingTexts):
		return MissingTexts
	case errors.Is(err, service.ErrInvalidFormat):
		return InvalidFormat
	case errors.Is(err, service.ErrBatchTooLarge):
		return BatchTooLarge
	default:
		return BatchError
	}
}
