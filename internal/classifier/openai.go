package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = `You are a sentiment classifier. Classify the sentiment of the user's text.
Respond with a JSON object of the form {"label": "...", "score": ...} where label is one of
NEGATIVE, NEUTRAL or POSITIVE and score is your confidence between 0 and 1.`

// OpenAI asks a chat completion model to label the text. The model is
// forced into JSON mode so its answer can be decoded into a Prediction.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a chat completion backed classifier. baseURL may be empty
// to use the public API.
func NewOpenAI(apiKey, baseURL, model string, timeout time.Duration) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Classify sends one chat completion request per text.
func (o *OpenAI) Classify(ctx context.Context, text string) (Prediction, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Prediction{}, ErrNoPrediction
	}

	var p Prediction
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return Prediction{}, fmt.Errorf("failed to decode completion %q: %w", preview([]byte(content)), err)
	}

	if p.Label == "" {
		return Prediction{}, ErrNoPrediction
	}

	return checkScore(p)
}

// Health looks up the configured model.
func (o *OpenAI) Health(ctx context.Context) error {
	if _, err := o.client.GetModel(ctx, o.model); err != nil {
		return fmt.Errorf("model %s unavailable: %w", o.model, err)
	}
	return nil
}

// Model returns the chat model in use.
func (o *OpenAI) Model() string {
	return o.model
}
