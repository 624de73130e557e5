package service

import "strings"

// Sentiment is a label of the public sentiment vocabulary.
type Sentiment string

const (
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Positive Sentiment = "positive"
)

// labelTable maps upper-cased raw classifier labels to the public vocabulary.
var labelTable = map[string]Sentiment{
	"LABEL_0":  Negative,
	"LABEL_1":  Neutral,
	"LABEL_2":  Positive,
	"NEGATIVE": Negative,
	"NEUTRAL":  Neutral,
	"POSITIVE": Positive,
}

// NormalizeLabel maps a raw classifier label onto the public vocabulary,
// ignoring case. A label outside the table is returned lower-cased with
// mapped set to false.
func NormalizeLabel(raw string) (sentiment Sentiment, mapped bool) {
	if s, ok := labelTable[strings.ToUpper(raw)]; ok {
		return s, true
	}
	return Sentiment(strings.ToLower(raw)), false
}
