package classifier

import (
	"fmt"
	"time"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// ModelName identifies the model. The openai backend uses it as the
	// chat model unless it equals DefaultModel.
	ModelName    string
	DefaultModel string
	ModelPath    string
	Endpoint     string
	Token        string
	Timeout      time.Duration
}

// New builds the backend named by o.Backend and returns it together with
// the model identifier to report to clients.
func New(o Options) (Classifier, string, error) {
	switch o.Backend {
	case BackendVader:
		return NewVader(), VaderModelName, nil

	case BackendHugot:
		h, err := NewHugot(o.ModelPath)
		if err != nil {
			return nil, "", err
		}
		return h, o.ModelName, nil

	case BackendRemote:
		return NewRemote(o.Endpoint, o.Token, o.Timeout), o.ModelName, nil

	case BackendOpenAI:
		model := o.ModelName
		if model == o.DefaultModel {
			model = ""
		}
		c := NewOpenAI(o.Token, o.Endpoint, model, o.Timeout)
		return c, c.Model(), nil

	default:
		return nil, "", fmt.Errorf("unknown classifier backend %q", o.Backend)
	}
}
