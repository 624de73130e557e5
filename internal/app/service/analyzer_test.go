package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/classifier"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
	"github.com/atinyakov/go-sentiment-service/internal/mocks"
)

func TestAnalyzer_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockClassifier(ctrl)

	c.EXPECT().
		Classify(gomock.Any(), "I love this").
		Return(classifier.Prediction{Label: "LABEL_2", Score: 0.987654321}, nil).
		Times(1)

	a := service.NewAnalyzer(c, zap.NewNop(), nil)

	res, err := a.Analyze(context.Background(), "I love this")
	require.NoError(t, err)
	assert.Equal(t, service.Positive, res.Sentiment)
	assert.Equal(t, 0.9877, res.Confidence)
	assert.GreaterOrEqual(t, res.ProcessingTimeMs, 0.0)
}

func TestAnalyzer_ClassifierFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockClassifier(ctrl)

	c.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(classifier.Prediction{}, errors.New("model exploded"))

	a := service.NewAnalyzer(c, zap.NewNop(), nil)

	_, err := a.Analyze(context.Background(), "anything")
	require.Error(t, err)

	var fault *service.ClassifierFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "model exploded", err.Error())
}

func TestAnalyzer_UnmappedLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockClassifier(ctrl)

	c.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(classifier.Prediction{Label: "MIXED", Score: 0.5}, nil)
	c.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(classifier.Prediction{Label: "Sarcastic, obviously", Score: 0.5}, nil)

	core, logs := observer.New(zapcore.WarnLevel)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	a := service.NewAnalyzer(c, zap.New(core), m)

	res, err := a.Analyze(context.Background(), "meh")
	require.NoError(t, err)
	assert.Equal(t, service.Sentiment("mixed"), res.Sentiment)

	entries := logs.FilterField(zap.String("label", "MIXED")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	_, err = a.Analyze(context.Background(), "oh great")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterField(zap.String("label", "Sarcastic, obviously")).Len())

	// one series no matter which labels were seen
	assert.Equal(t, 1, mustCount(t, reg, "sentiment_unmapped_labels_total"))
}

func TestAnalyzer_SameInputSameOutput(t *testing.T) {
	vader := classifier.NewVader()
	a := service.NewAnalyzer(vader, zap.NewNop(), nil)

	first, err := a.Analyze(context.Background(), "This is absolutely wonderful!")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "This is absolutely wonderful!")
	require.NoError(t, err)

	assert.Equal(t, first.Sentiment, second.Sentiment)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, service.Positive, first.Sentiment)
}

func mustCount(t *testing.T, g prometheus.Gatherer, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(g, name)
	require.NoError(t, err)
	return n
}
