package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/middleware"
	"github.com/atinyakov/go-sentiment-service/internal/mocks"
)

func newTestPostHandler(t *testing.T) (*PostHandler, *mocks.MockSentimentServiceIface) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockSentimentServiceIface(ctrl)
	mockService.EXPECT().Model().Return("test-model").AnyTimes()

	return NewPost(mockService, zap.NewNop(), nil), mockService
}

func strPtr(s string) *string { return &s }

func TestAnalyze(t *testing.T) {
	longText := strings.Repeat("a", service.MaxTextLength+1)

	tests := []struct {
		name         string
		body         string
		expectText   *string
		serviceRes   service.Result
		serviceErr   error
		callsService bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "positive text",
			body:         `{"text":"I love this"}`,
			expectText:   strPtr("I love this"),
			serviceRes:   service.Result{Sentiment: service.Positive, Confidence: 0.98, ProcessingTimeMs: 12.5},
			callsService: true,
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing text",
			body:         `{}`,
			serviceErr:   service.ErrMissingText,
			callsService: true,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Missing required field: text","code":"MISSING_TEXT"}`,
		},
		{
			name:         "empty body",
			body:         ``,
			serviceErr:   service.ErrMissingText,
			callsService: true,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Missing required field: text","code":"MISSING_TEXT"}`,
		},
		{
			name:         "blank text",
			body:         `{"text":"   "}`,
			expectText:   strPtr("   "),
			serviceErr:   service.ErrEmptyText,
			callsService: true,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Text cannot be empty","code":"EMPTY_TEXT"}`,
		},
		{
			name:         "too long",
			body:         `{"text":"` + longText + `"}`,
			expectText:   &longText,
			serviceErr:   service.ErrTextTooLong,
			callsService: true,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Text too long. Maximum 5000 characters.","code":"TEXT_TOO_LONG"}`,
		},
		{
			name:         "malformed json",
			body:         `{"text":`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error","code":"ANALYSIS_ERROR"}`,
		},
		{
			name:         "text is not a string",
			body:         `{"text":42}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error","code":"ANALYSIS_ERROR"}`,
		},
		{
			name:         "text is an array",
			body:         `{"text":["a","b"]}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error","code":"ANALYSIS_ERROR"}`,
		},
		{
			name:         "classifier fault is hidden",
			body:         `{"text":"hello"}`,
			expectText:   strPtr("hello"),
			serviceErr:   &service.ClassifierFault{Err: errors.New("cuda out of memory")},
			callsService: true,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error","code":"ANALYSIS_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockService := newTestPostHandler(t)

			if tt.callsService {
				mockService.EXPECT().
					Analyze(gomock.Any(), tt.expectText).
					Return(tt.serviceRes, tt.serviceErr).
					Times(1)
			}

			req := httptest.NewRequest(http.MethodPost, PathAnalyze, bytes.NewBufferString(tt.body))
			req = middleware.InjectRequestID(req, "req-1")
			rr := httptest.NewRecorder()

			h.Analyze(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestAnalyze_SuccessEnvelope(t *testing.T) {
	h, mockService := newTestPostHandler(t)
	text := strings.Repeat("x", 150)

	mockService.EXPECT().
		Analyze(gomock.Any(), &text).
		Return(service.Result{Sentiment: service.Neutral, Confidence: 0.5123, ProcessingTimeMs: 3.21}, nil)

	body, _ := json.Marshal(map[string]string{"text": text})
	req := httptest.NewRequest(http.MethodPost, PathAnalyze, bytes.NewReader(body))
	req = middleware.InjectRequestID(req, "req-7")
	rr := httptest.NewRecorder()

	h.Analyze(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Success bool `json:"success"`
		Data    struct {
			InputText        string  `json:"input_text"`
			Sentiment        string  `json:"sentiment"`
			Confidence       float64 `json:"confidence"`
			ProcessingTimeMs float64 `json:"processing_time_ms"`
		} `json:"data"`
		Metadata map[string]string `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.True(t, got.Success)
	assert.Equal(t, strings.Repeat("x", 100)+"...", got.Data.InputText)
	assert.Equal(t, "neutral", got.Data.Sentiment)
	assert.Equal(t, 0.5123, got.Data.Confidence)
	assert.Equal(t, 3.21, got.Data.ProcessingTimeMs)
	assert.Equal(t, "test-model", got.Metadata["model"])
	assert.Equal(t, "Ciryx Vibe", got.Metadata["service"])
	assert.Equal(t, "req-7", got.Metadata["request_id"])
	assert.NotEmpty(t, got.Metadata["timestamp"])
}

func TestBatch(t *testing.T) {
	okOutcome := service.BatchOutcome{
		Results: []service.ItemResult{
			{Index: 0, TextPreview: "good", Result: &service.Result{Sentiment: service.Positive, Confidence: 0.9, ProcessingTimeMs: 1}},
			{Index: 1, Err: service.ItemErrEmptyText},
			{Index: 2, Err: "inference failed"},
		},
		Summary: service.BatchSummary{TotalTexts: 3, Successful: 1, TotalProcessingTimeMs: 4.2},
	}

	tests := []struct {
		name         string
		body         string
		callsService bool
		itemCount    int
		outcome      service.BatchOutcome
		serviceErr   error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "mixed batch",
			body:         `{"texts":["good","","bad"]}`,
			callsService: true,
			itemCount:    3,
			outcome:      okOutcome,
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing texts",
			body:         `{"text":"oops"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Missing required field: texts (array)","code":"MISSING_TEXTS"}`,
		},
		{
			name:         "texts not an array",
			body:         `{"texts":"hello"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"texts must be an array","code":"INVALID_FORMAT"}`,
		},
		{
			name:         "malformed json",
			body:         `{"texts":[`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request format","code":"INVALID_FORMAT"}`,
		},
		{
			name:         "too large",
			body:         `{"texts":[` + strings.TrimSuffix(strings.Repeat(`"x",`, service.MaxBatchSize+1), ",") + `]}`,
			callsService: true,
			itemCount:    service.MaxBatchSize + 1,
			serviceErr:   service.ErrBatchTooLarge,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Maximum 100 texts per batch","code":"BATCH_TOO_LARGE"}`,
		},
		{
			name:         "unexpected failure",
			body:         `{"texts":["a"]}`,
			callsService: true,
			itemCount:    1,
			serviceErr:   errors.New("unexpected"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error","code":"BATCH_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockService := newTestPostHandler(t)

			if tt.callsService {
				mockService.EXPECT().
					AnalyzeBatch(gomock.Any(), gomock.Len(tt.itemCount)).
					Return(tt.outcome, tt.serviceErr).
					Times(1)
			}

			req := httptest.NewRequest(http.MethodPost, PathBatch, bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			h.Batch(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestBatch_SuccessBody(t *testing.T) {
	h, mockService := newTestPostHandler(t)

	mockService.EXPECT().
		AnalyzeBatch(gomock.Any(), gomock.Len(0)).
		Return(service.BatchOutcome{Results: []service.ItemResult{}}, nil)

	req := httptest.NewRequest(http.MethodPost, PathBatch, bytes.NewBufferString(`{"texts":[]}`))
	rr := httptest.NewRecorder()
	h.Batch(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.JSONEq(t, `{"results":[],"summary":{"total_texts":0,"successful":0,"total_processing_time_ms":0}}`, string(got["data"]))
	assert.JSONEq(t, `true`, string(got["success"]))
}

func TestBatch_ItemKinds(t *testing.T) {
	h, mockService := newTestPostHandler(t)

	mockService.EXPECT().
		AnalyzeBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, items []service.BatchItem) (service.BatchOutcome, error) {
			require.Len(t, items, 3)
			assert.Equal(t, "good", *items[0].Text)
			assert.Nil(t, items[1].Text)
			assert.True(t, items[2].NotString)
			return service.BatchOutcome{}, nil
		})

	req := httptest.NewRequest(http.MethodPost, PathBatch, bytes.NewBufferString(`{"texts":["good",null,5]}`))
	rr := httptest.NewRecorder()
	h.Batch(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
