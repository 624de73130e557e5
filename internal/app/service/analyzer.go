package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/classifier"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
)

// Result is the outcome of analyzing a single text.
type Result struct {
	Sentiment        Sentiment
	Confidence       float64
	ProcessingTimeMs float64
}

// ClassifierFault reports a failed classifier call. Its message is the
// message of the underlying error.
type ClassifierFault struct {
	Err error
}

func (f *ClassifierFault) Error() string {
	return f.Err.Error()
}

func (f *ClassifierFault) Unwrap() error {
	return f.Err
}

// Analyzer runs one classifier call per text.
type Analyzer struct {
	classifier classifier.Classifier
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewAnalyzer wraps c. The classifier is shared by every request and is not
// reloaded for the lifetime of the analyzer.
func NewAnalyzer(c classifier.Classifier, logger *zap.Logger, m *metrics.Metrics) *Analyzer {
	return &Analyzer{
		classifier: c,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
}

// Analyze classifies text, which must already be validated. The classifier
// is called exactly once; any error it returns is reported as a
// *ClassifierFault.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, error) {
	start := a.now()
	prediction, err := a.classifier.Classify(ctx, text)
	elapsed := a.now().Sub(start)

	a.metrics.ObserveClassification(elapsed, err)

	if err != nil {
		a.logger.Error("classifier call failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed))
		return Result{}, &ClassifierFault{Err: err}
	}

	sentiment, mapped := NormalizeLabel(prediction.Label)
	if !mapped {
		a.logger.Warn("classifier label has no canonical mapping",
			zap.String("label", prediction.Label),
			zap.String("sentiment", string(sentiment)))
		a.metrics.UnmappedLabel()
	}

	return Result{
		Sentiment:        sentiment,
		Confidence:       round(prediction.Score, 4),
		ProcessingTimeMs: milliseconds(elapsed),
	}, nil
}

// milliseconds converts d to milliseconds rounded to two decimals, never
// negative.
func milliseconds(d time.Duration) float64 {
	if d < 0 {
		d = 0
	}
	return round(float64(d)/float64(time.Millisecond), 2)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
