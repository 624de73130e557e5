package classifier

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// Hugot runs a transformer text classification model exported to ONNX
// inside the process.
type Hugot struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewHugot loads the model found in modelPath. The directory must hold the
// ONNX export together with its tokenizer files.
func NewHugot(modelPath string) (*Hugot, error) {
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentiment",
		Options: []hugot.TextClassificationOption{
			pipelines.WithSoftmax(),
		},
	}

	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to load model from %s: %w", modelPath, err)
	}

	return &Hugot{session: session, pipeline: pipeline}, nil
}

// Classify runs the pipeline on a single text and returns the top label.
func (h *Hugot) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	out, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return Prediction{}, fmt.Errorf("inference failed: %w", err)
	}

	if len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return Prediction{}, ErrNoPrediction
	}

	top := out.ClassificationOutputs[0][0]
	for _, c := range out.ClassificationOutputs[0][1:] {
		if c.Score > top.Score {
			top = c
		}
	}

	return Prediction{Label: top.Label, Score: float64(top.Score)}, nil
}

// Close destroys the session and the models loaded into it.
func (h *Hugot) Close() error {
	return h.session.Destroy()
}
