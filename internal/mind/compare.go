// /internal/mind/compare.go
package mind

import "strings"

// ComparisonMetrics describes how far the processed reply drifted from the
// unfiltered one.
type ComparisonMetrics struct {
	LengthDifference  int
	LengthRatio       float64
	WordSimilarity    float64
	SignificantChange bool
	NaturalVariety    float64
}

var stockOpeners = []string{"wait", "hold on", "hold up", "you know what"}

// CompareResponses measures word-set overlap between the raw and final
// replies and scores how formulaic the final one reads.
func CompareResponses(raw, final string) ComparisonMetrics {
	rawWords := wordSet(raw)
	finalWords := wordSet(final)

	inter, union := 0, len(rawWords)
	for w := range finalWords {
		if rawWords[w] {
			inter++
		} else {
			union++
		}
	}
	similarity := 1.0
	if union > 0 {
		similarity = float64(inter) / float64(union)
	}

	rawLen := len(strings.Fields(raw))
	finalLen := len(strings.Fields(final))
	ratio := 1.0
	if rawLen > 0 {
		ratio = float64(finalLen) / float64(rawLen)
	}

	return ComparisonMetrics{
		LengthDifference:  finalLen - rawLen,
		LengthRatio:       ratio,
		WordSimilarity:    similarity,
		SignificantChange: similarity < 0.5,
		NaturalVariety:    varietyScore(final),
	}
}

// varietyScore rewards replies that avoid stock conversational openers and
// repeated words.
func varietyScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	stock := false
	for _, marker := range stockOpeners {
		if strings.Contains(lower, marker) {
			stock = true
			break
		}
	}
	if !stock {
		score += 0.5
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		unique := make(map[string]bool, len(words))
		for _, w := range words {
			unique[w] = true
		}
		score += float64(len(unique)) / float64(len(words)) * 0.3
	}

	prefixed := false
	for _, p := range []string{"wait", "hold", "you know"} {
		if strings.HasPrefix(lower, p) {
			prefixed = true
			break
		}
	}
	if !prefixed {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
