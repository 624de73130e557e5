package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Per-item error messages.
const (
	ItemErrEmptyText = "Empty text"
	ItemErrNotString = "Text must be a string"
)

// TextAnalyzer analyzes one validated text.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}

// BatchItem is one element of a batch request. Text is nil when the element
// was null; NotString marks elements of any other non-string JSON type.
type BatchItem struct {
	Text      *string
	NotString bool
}

// ItemResult is the outcome for one batch element. Exactly one of Result
// and Err is set.
type ItemResult struct {
	Index       int
	TextPreview string
	Result      *Result
	Err         string
}

// Succeeded reports whether the item carries a sentiment.
func (r ItemResult) Succeeded() bool {
	return r.Result != nil
}

// BatchSummary aggregates a processed batch.
type BatchSummary struct {
	TotalTexts            int
	Successful            int
	TotalProcessingTimeMs float64
}

// BatchOutcome holds one ItemResult per input element, in input order.
type BatchOutcome struct {
	Results []ItemResult
	Summary BatchSummary
}

// BatchAnalyzer processes batch requests item by item.
type BatchAnalyzer struct {
	analyzer TextAnalyzer
	logger   *zap.Logger
	maxSize  int
	now      func() time.Time
}

// NewBatchAnalyzer builds a batch processor accepting up to maxSize items.
func NewBatchAnalyzer(a TextAnalyzer, logger *zap.Logger, maxSize int) *BatchAnalyzer {
	return &BatchAnalyzer{
		analyzer: a,
		logger:   logger,
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// AnalyzeBatch rejects oversized batches with ErrBatchTooLarge before any
// work is done. Otherwise it analyzes every item sequentially; an item that
// fails is recorded with its error and never stops the batch.
func (b *BatchAnalyzer) AnalyzeBatch(ctx context.Context, items []BatchItem) (BatchOutcome, error) {
	if err := ValidateBatchSize(len(items), b.maxSize); err != nil {
		return BatchOutcome{}, err
	}

	results := make([]ItemResult, 0, len(items))
	start := b.now()

	for i, item := range items {
		results = append(results, b.analyzeItem(ctx, i, item))
	}

	elapsed := b.now().Sub(start)

	summary := BatchSummary{
		TotalTexts:            len(items),
		TotalProcessingTimeMs: milliseconds(elapsed),
	}
	for _, r := range results {
		if r.Succeeded() {
			summary.Successful++
		}
	}

	b.logger.Info("batch processed",
		zap.Int("total_texts", summary.TotalTexts),
		zap.Int("successful", summary.Successful),
		zap.Duration("elapsed", elapsed))

	return BatchOutcome{Results: results, Summary: summary}, nil
}

func (b *BatchAnalyzer) analyzeItem(ctx context.Context, index int, item BatchItem) ItemResult {
	switch {
	case item.NotString:
		return ItemResult{Index: index, Err: ItemErrNotString}
	case item.Text == nil || isBlank(*item.Text):
		return ItemResult{Index: index, Err: ItemErrEmptyText}
	}

	text := *item.Text
	result, err := b.analyzer.Analyze(ctx, text)
	if err != nil {
		b.logger.Warn("batch item failed",
			zap.Int("index", index),
			zap.Error(err))
		msg := err.Error()
		if msg == "" {
			msg = "classification failed"
		}
		return ItemResult{Index: index, Err: msg}
	}

	return ItemResult{
		Index:       index,
		TextPreview: Preview(text, PreviewLength),
		Result:      &result,
	}
}
