// Package handler serves the HTTP endpoints of the sentiment service. It
// decodes request bodies, calls the service and writes the JSON envelopes
// built by the response package.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/metrics"
	"github.com/atinyakov/go-sentiment-service/internal/models"
)

// maxBodySize limits request bodies. A full batch of maximum-length texts
// fits with room to spare.
const maxBodySize = 8 << 20

// malformedRequest is returned when a request body cannot be read or is
// not valid JSON.
type malformedRequest struct {
	msg string
}

func (mr *malformedRequest) Error() string {
	return mr.msg
}

// decodeJSONObject reads the body and parses it with models.DecodeObject.
// An empty body or a body holding something other than a JSON object
// yields a nil map.
func decodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &malformedRequest{msg: fmt.Sprintf("Request body must not be larger than %d bytes", tooLarge.Limit)}
		}
		return nil, &malformedRequest{msg: "Request body could not be read: " + err.Error()}
	}

	obj, err := models.DecodeObject(data)
	if err != nil {
		return nil, &malformedRequest{msg: err.Error()}
	}
	return obj, nil
}

// jsonWriter writes JSON bodies and counts them per endpoint.
type jsonWriter struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// write marshals body and sends it with status. code labels the metric.
func (jw jsonWriter) write(w http.ResponseWriter, endpoint, code string, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Errorf("marshal %s response: %w", endpoint, err))
	}

	jw.metrics.Request(endpoint, code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		jw.logger.Warn("unable to write response", zap.String("endpoint", endpoint), zap.Error(err))
	}
}
