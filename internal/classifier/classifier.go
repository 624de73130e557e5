// Package classifier holds the text classifiers the service can be backed by.
// Every backend turns a piece of text into a raw label and a score in [0,1];
// mapping those labels onto the public sentiment vocabulary is done by the
// caller.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Backend names accepted by the service configuration.
const (
	BackendVader  = "vader"
	BackendHugot  = "hugot"
	BackendRemote = "remote"
	BackendOpenAI = "openai"
)

// ErrNoPrediction is returned when a backend answers without any label.
var ErrNoPrediction = errors.New("classifier returned no prediction")

// ErrScoreOutOfRange is returned when a backend reports a score outside [0,1].
var ErrScoreOutOfRange = errors.New("score out of range")

// Prediction is the raw output of a classifier.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier maps a single text to a raw label and a confidence score.
// Implementations are created once at startup and are read-only afterwards.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// HealthChecker is implemented by classifiers that can report whether they
// are able to serve requests.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Close releases resources held by c if it owns any.
func Close(c Classifier) error {
	if closer, ok := c.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// checkScore rejects predictions whose score is not a probability.
func checkScore(p Prediction) (Prediction, error) {
	if math.IsNaN(p.Score) || p.Score < 0 || p.Score > 1 {
		return Prediction{}, fmt.Errorf("%w: %v", ErrScoreOutOfRange, p.Score)
	}
	return p, nil
}
