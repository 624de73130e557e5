package classifier

import (
	"context"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// VaderModelName identifies the lexicon model in response metadata.
const VaderModelName = "vader-lexicon"

// Compound score bounds separating positive and negative text from neutral.
const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// Vader classifies text with the VADER lexicon. It runs in process and
// needs no model files, which makes it the default backend.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader builds the lexicon analyzer.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify returns POSITIVE, NEGATIVE or NEUTRAL. For polar labels the score
// is the magnitude of the compound score, for NEUTRAL it is the neutral
// proportion of the text.
func (v *Vader) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	scores := v.analyzer.PolarityScores(PlainText(text))
	compound := scores.Compound

	switch {
	case compound >= vaderPositiveThreshold:
		return Prediction{Label: "POSITIVE", Score: math.Min(math.Abs(compound), 1)}, nil
	case compound <= vaderNegativeThreshold:
		return Prediction{Label: "NEGATIVE", Score: math.Min(math.Abs(compound), 1)}, nil
	default:
		return Prediction{Label: "NEUTRAL", Score: math.Min(math.Max(scores.Neutral, 0), 1)}, nil
	}
}

// PlainText renders Markdown input to text and drops links, so markup does
// not skew lexicon scores.
func PlainText(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := htmlTagPattern.ReplaceAllString(string(rendered), " ")
	text = html.UnescapeString(text)
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	text = urlPattern.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}
