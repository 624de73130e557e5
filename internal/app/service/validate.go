package service

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Request limits.
const (
	MaxTextLength = 5000
	MaxBatchSize  = 100
)

var (
	ErrMissingText   = errors.New("missing required field: text")
	ErrEmptyText     = errors.New("text cannot be empty")
	ErrTextTooLong   = errors.New("text too long")
	ErrMissingTexts  = errors.New("missing required field: texts")
	ErrInvalidFormat = errors.New("invalid request format")
	ErrBatchTooLarge = errors.New("batch too large")
)

// ValidateText checks a candidate text in a fixed order: missing, empty
// after trimming, longer than maxLen characters. A nil text means the field
// was not supplied. Length is counted in characters on the raw text.
func ValidateText(text *string, maxLen int) error {
	if text == nil {
		return ErrMissingText
	}
	if isBlank(*text) {
		return ErrEmptyText
	}
	if utf8.RuneCountInString(*text) > maxLen {
		return ErrTextTooLong
	}
	return nil
}

// ValidateBatchSize rejects batches holding more than maxSize items.
func ValidateBatchSize(n, maxSize int) error {
	if n > maxSize {
		return ErrBatchTooLarge
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
