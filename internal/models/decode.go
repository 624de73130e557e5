package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/atinyakov/go-sentiment-service/internal/app/service"
)

var jsonNull = []byte("null")

// DecodeObject parses a request body holding a single JSON value. It
// returns a nil map, and no error, when the body is empty or holds a value
// other than an object, so callers treat every field as missing.
func DecodeObject(data []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidFormat, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: body must only contain a single JSON value", service.ErrInvalidFormat)
	}

	if raw[0] != '{' {
		return nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidFormat, err)
	}
	return obj, nil
}

// TextField extracts the text field. A missing or null field yields nil; a
// value that is not a string is ErrInvalidFormat.
func TextField(obj map[string]json.RawMessage) (*string, error) {
	raw, ok := obj["text"]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("%w: text must be a string", service.ErrInvalidFormat)
	}
	return &text, nil
}

// TextsField extracts the texts array as batch items. A missing or null
// field is ErrMissingTexts and a non-array value is ErrInvalidFormat.
// Elements keep their position; null elements have a nil Text and
// non-string elements are flagged NotString.
func TextsField(obj map[string]json.RawMessage) ([]service.BatchItem, error) {
	raw, ok := obj["texts"]
	if !ok || isNull(raw) {
		return nil, service.ErrMissingTexts
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: texts must be an array", service.ErrInvalidFormat)
	}

	items := make([]service.BatchItem, len(elems))
	for i, elem := range elems {
		if isNull(elem) {
			continue
		}
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			items[i].NotString = true
			continue
		}
		items[i].Text = &s
	}
	return items, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
