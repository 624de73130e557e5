package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const userAgent = "ciryx-vibe/1.0 (+https://github.com/atinyakov/go-sentiment-service)"

// inferenceRequest is the body understood by HuggingFace style inference
// endpoints.
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Remote calls an HTTP inference endpoint hosting the model. The endpoint
// answers either [[{label,score},...]] or [{label,score},...]; the highest
// scoring entry is returned.
type Remote struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemote builds a client for endpoint. A non-empty token is sent as a
// bearer token on every request.
func NewRemote(endpoint, token string, timeout time.Duration) *Remote {
	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = timeout
	}

	return &Remote{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: httpClient,
	}
}

// Classify sends text to the inference endpoint.
func (r *Remote) Classify(ctx context.Context, text string) (Prediction, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, preview(respBody))
	}

	return decodePredictions(respBody)
}

// Health probes the endpoint with a GET request. Any status below 500 means
// the endpoint is reachable.
func (r *Remote) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("inference endpoint unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

func decodePredictions(body []byte) (Prediction, error) {
	var nested [][]Prediction
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return Prediction{}, ErrNoPrediction
		}
		return best(nested[0])
	}

	var flat []Prediction
	if err := json.Unmarshal(body, &flat); err != nil {
		return Prediction{}, fmt.Errorf("failed to decode response %s: %w", preview(body), err)
	}

	return best(flat)
}

func best(predictions []Prediction) (Prediction, error) {
	if len(predictions) == 0 {
		return Prediction{}, ErrNoPrediction
	}

	top := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > top.Score {
			top = p
		}
	}

	return checkScore(top)
}

func preview(body []byte) string {
	raw := string(body)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}
