package service

const (
	// PreviewLength bounds the text echoed for each batch item.
	PreviewLength = 50
	// InputTextLength bounds the text echoed by single analysis.
	InputTextLength = 100

	ellipsis = "..."
)

// Preview returns text unchanged when it holds at most limit characters,
// otherwise its first limit characters followed by "...".
func Preview(text string, limit int) string {
	count := 0
	for i := range text {
		if count == limit {
			return text[:i] + ellipsis
		}
		count++
	}
	return text
}
