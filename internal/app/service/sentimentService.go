package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/classifier"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
)

// SentimentService validates requests and runs them through the classifier.
type SentimentService struct {
	analyzer *Analyzer
	batch    *BatchAnalyzer
	model    string
	logger   *zap.Logger
}

// NewSentiment builds the service around an initialized classifier. model
// is the identifier reported in response metadata.
func NewSentiment(c classifier.Classifier, model string, logger *zap.Logger, m *metrics.Metrics) *SentimentService {
	analyzer := NewAnalyzer(c, logger, m)

	return &SentimentService{
		analyzer: analyzer,
		batch:    NewBatchAnalyzer(analyzer, logger, MaxBatchSize),
		model:    model,
		logger:   logger,
	}
}

// Analyze validates text and classifies it. Validation failures are
// returned as ErrMissingText, ErrEmptyText or ErrTextTooLong; classifier
// failures as *ClassifierFault.
func (s *SentimentService) Analyze(ctx context.Context, text *string) (Result, error) {
	if err := ValidateText(text, MaxTextLength); err != nil {
		return Result{}, err
	}

	return s.analyzer.Analyze(ctx, *text)
}

// AnalyzeBatch processes up to MaxBatchSize items.
func (s *SentimentService) AnalyzeBatch(ctx context.Context, items []BatchItem) (BatchOutcome, error) {
	return s.batch.AnalyzeBatch(ctx, items)
}

// Model returns the model identifier.
func (s *SentimentService) Model() string {
	return s.model
}
