package service

import "context"

// SentimentServiceIface is the analysis API consumed by the transports.
type SentimentServiceIface interface {
	Analyze(ctx context.Context, text *string) (Result, error)
	AnalyzeBatch(ctx context.Context, items []BatchItem) (BatchOutcome, error)
	Model() string
}
