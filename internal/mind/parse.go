// /internal/mind/parse.go
package mind

import (
	"strings"
	"unicode"
)

var emotionalWords = []string{
	"love", "hate", "amazing", "terrible", "excited", "upset",
	"frustrated", "happy", "sad",
}

var personalIndicators = []string{"i feel", "i think", "my", "me", "personally"}

// ParseMessage extracts surface features from one user message and estimates
// engagement from them. The estimate is clamped to [0.1, 0.9].
func ParseMessage(text string) ParsedMessage {
	words := strings.Fields(text)
	lower := strings.ToLower(text)

	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	length := len(text)
	ratio := float64(upper) / float64(max(1, length))

	m := ParsedMessage{
		RawMessage:       text,
		Length:           length,
		WordCount:        len(words),
		HasQuestion:      strings.Contains(text, "?"),
		ExclamationCount: strings.Count(text, "!"),
		UppercaseRatio:   ratio,
	}

	score := 0.5

	switch {
	case m.WordCount > 15:
		score += 0.25
	case m.WordCount > 8:
		score += 0.15
	case m.WordCount < 2:
		score -= 0.4
	case m.WordCount < 4:
		score -= 0.2
	}

	if m.HasQuestion {
		score += 0.2
	}
	if m.ExclamationCount > 0 {
		score += 0.15
	}
	if m.ExclamationCount > 2 {
		score += 0.1
	}
	if m.UppercaseRatio > 0.3 {
		score += 0.15
	}

	for _, w := range emotionalWords {
		if strings.Contains(lower, w) {
			score += 0.1
			break
		}
	}
	for _, p := range personalIndicators {
		if strings.Contains(lower, p) {
			score += 0.05
			break
		}
	}

	m.EstimatedEngagement = clamp(score, 0.1, 0.9)
	return m
}
