package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteClassify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      Prediction
		expectErr bool
	}{
		{
			name:   "nested response picks highest score",
			status: http.StatusOK,
			body:   `[[{"label":"LABEL_0","score":0.1},{"label":"LABEL_2","score":0.8},{"label":"LABEL_1","score":0.1}]]`,
			want:   Prediction{Label: "LABEL_2", Score: 0.8},
		},
		{
			name:   "flat response",
			status: http.StatusOK,
			body:   `[{"label":"negative","score":0.93}]`,
			want:   Prediction{Label: "negative", Score: 0.93},
		},
		{
			name:      "empty response",
			status:    http.StatusOK,
			body:      `[]`,
			expectErr: true,
		},
		{
			name:      "malformed response",
			status:    http.StatusOK,
			body:      `{"oops":true}`,
			expectErr: true,
		},
		{
			name:      "score above one",
			status:    http.StatusOK,
			body:      `[[{"label":"LABEL_2","score":85}]]`,
			expectErr: true,
		},
		{
			name:      "negative score",
			status:    http.StatusOK,
			body:      `[{"label":"LABEL_0","score":-1}]`,
			expectErr: true,
		},
		{
			name:      "server error",
			status:    http.StatusServiceUnavailable,
			body:      `{"error":"model is loading"}`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req inferenceRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "some text", req.Inputs)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			r := NewRemote(ts.URL, "", time.Second)
			got, err := r.Classify(context.Background(), "some text")

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteClassify_BearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"label":"POSITIVE","score":0.99}]`))
	}))
	defer ts.Close()

	got, err := NewRemote(ts.URL, "secret-token", time.Second).Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", got.Label)
}

func TestRemoteHealth(t *testing.T) {
	status := http.StatusOK
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
	}))
	defer ts.Close()

	r := NewRemote(ts.URL, "", time.Second)
	require.NoError(t, r.Health(context.Background()))

	status = http.StatusMethodNotAllowed
	require.NoError(t, r.Health(context.Background()))

	status = http.StatusBadGateway
	require.Error(t, r.Health(context.Background()))
}

func TestRemoteClassify_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewRemote(url, "", time.Second).Classify(context.Background(), "hello")
	require.Error(t, err)
}

func TestRemoteClassify_ScoreOutOfRange(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"LABEL_2","score":85},{"label":"LABEL_0","score":0.1}]]`))
	}))
	defer ts.Close()

	_, err := NewRemote(ts.URL, "", time.Second).Classify(context.Background(), "hello")
	require.ErrorIs(t, err, ErrScoreOutOfRange)
}
