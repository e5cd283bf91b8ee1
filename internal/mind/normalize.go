// /internal/mind/normalize.go
package mind

import (
	"encoding/json"
	"regexp"
	"strings"
)

// NormalizedResponse is the structured reply the rest of the turn consumes,
// whatever shape the backend produced.
type NormalizedResponse struct {
	ResponseText         string           `json:"response_text"`
	EngagementAnalysis   float64          `json:"engagement_analysis"`
	BoredomDetected      bool             `json:"boredom_detected"`
	TopicShiftSuggestion string           `json:"topic_shift_suggestion"`
	MoodAssessment       string           `json:"mood_assessment"`
	InitiativeTaken      bool             `json:"initiative_taken"`
	LearningFeedback     LearningFeedback `json:"learning_feedback"`
	Error                string           `json:"error,omitempty"`
}

type LearningFeedback struct {
	ResponseQuality           float64 `json:"response_quality"`
	UserSatisfactionPredicted float64 `json:"user_satisfaction_predicted"`
}

type NormalizeOutcome string

const (
	OutcomeParsed   NormalizeOutcome = "parsed"
	OutcomeRepaired NormalizeOutcome = "repaired"
	OutcomeFallback NormalizeOutcome = "fallback"
	OutcomeError    NormalizeOutcome = "error"
)

type NormalizeResult struct {
	Response          NormalizedResponse
	Outcome           NormalizeOutcome
	WordLimitEnforced bool
}

const maxResponseWords = 60

var controlCharsRe = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize turns a raw backend reply into a NormalizedResponse, whatever it
// takes: parse the JSON object if one is embedded, repair it if it needs
// cleaning, wrap plain text as a fallback, and produce an error response
// when an object is present but unparseable.
func Normalize(raw string) NormalizeResult {
	obj, found := extractJSONObject(raw)
	if !found {
		return NormalizeResult{
			Response:          fallbackWrap(raw),
			Outcome:           OutcomeFallback,
			WordLimitEnforced: len(strings.Fields(raw)) > 55,
		}
	}

	cleaned := cleanJSONText(obj)
	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return NormalizeResult{Response: errorResponse(), Outcome: OutcomeError}
	}

	outcome := OutcomeRepaired
	if strings.TrimSpace(raw) == obj && cleaned == obj {
		outcome = OutcomeParsed
	}
	resp := NormalizeFields(fields)
	return NormalizeResult{
		Response:          resp,
		Outcome:           outcome,
		WordLimitEnforced: resp.ResponseText != stringField(fields, "response_text", resp.ResponseText),
	}
}

// NormalizeFields coerces an already-decoded object, filling defaults for
// anything missing or mistyped and enforcing the word limit.
func NormalizeFields(fields map[string]any) NormalizedResponse {
	resp := NormalizedResponse{
		ResponseText:         stringField(fields, "response_text", "Tell me more about that."),
		EngagementAnalysis:   clamp(floatField(fields, "engagement_analysis", 0.5), 0.1, 0.9),
		BoredomDetected:      boolField(fields, "boredom_detected"),
		TopicShiftSuggestion: stringField(fields, "topic_shift_suggestion", ""),
		MoodAssessment:       stringField(fields, "mood_assessment", "neutral"),
		InitiativeTaken:      boolField(fields, "initiative_taken"),
		LearningFeedback:     LearningFeedback{ResponseQuality: 0.5, UserSatisfactionPredicted: 0.5},
	}

	if lf, ok := fields["learning_feedback"].(map[string]any); ok {
		resp.LearningFeedback.ResponseQuality = floatField(lf, "response_quality", 0.5)
		resp.LearningFeedback.UserSatisfactionPredicted = floatField(lf, "user_satisfaction_predicted", 0.5)
	}
	if errVal, ok := fields["error"].(string); ok {
		resp.Error = errVal
	}

	resp.ResponseText = EnforceWordLimit(resp.ResponseText)
	return resp
}

// EnforceWordLimit trims responses over the word budget, preferring a cut at
// a sentence boundary near the end of the truncation.
func EnforceWordLimit(text string) string {
	words := strings.Fields(text)
	if len(words) <= maxResponseWords {
		return text
	}

	truncated := strings.Join(words[:55], " ")
	best := -1
	for _, p := range []string{".", "?", "!"} {
		if i := strings.LastIndex(truncated, p); i > best {
			best = i
		}
	}
	if best > 0 && float64(best) > 0.8*float64(len(truncated)) {
		return truncated[:best+1]
	}
	return truncated + "..."
}

// extractJSONObject scans for the first balanced top-level {...}, respecting
// strings and escapes.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func cleanJSONText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = controlCharsRe.ReplaceAllString(s, " ")
	return whitespaceRe.ReplaceAllString(s, " ")
}

func fallbackWrap(raw string) NormalizedResponse {
	text := strings.TrimSpace(raw)
	if words := strings.Fields(text); len(words) > 55 {
		text = strings.Join(words[:50], " ") + "..."
	}
	if text == "" {
		text = "Let me think about that differently..."
	}
	return NormalizedResponse{
		ResponseText:       text,
		EngagementAnalysis: 0.6,
		MoodAssessment:     "thoughtful",
		LearningFeedback:   LearningFeedback{ResponseQuality: 0.6, UserSatisfactionPredicted: 0.6},
	}
}

func errorResponse() NormalizedResponse {
	return NormalizedResponse{
		ResponseText:         "Something's not clicking for me right now. What's really on your mind?",
		EngagementAnalysis:   0.4,
		BoredomDetected:      true,
		TopicShiftSuggestion: "try different approach",
		MoodAssessment:       "confused",
		InitiativeTaken:      true,
		LearningFeedback:     LearningFeedback{ResponseQuality: 0.3, UserSatisfactionPredicted: 0.4},
	}
}

func stringField(fields map[string]any, key, def string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return def
}

func floatField(fields map[string]any, key string, def float64) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err == nil {
			return f
		}
	}
	return def
}

func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}
