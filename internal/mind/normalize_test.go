package mind

import (
	"strings"
	"testing"
)

func TestNormalizeWellFormed(t *testing.T) {
	raw := `{"response_text": "Sounds good to me.", "engagement_analysis": 0.8, "boredom_detected": false, "topic_shift_suggestion": "", "mood_assessment": "engaged", "initiative_taken": true, "learning_feedback": {"response_quality": 0.8, "user_satisfaction_predicted": 0.7}}`

	result := Normalize(raw)
	if result.Outcome != OutcomeParsed {
		t.Fatalf("outcome = %s, want parsed", result.Outcome)
	}
	resp := result.Response
	if resp.ResponseText != "Sounds good to me." {
		t.Errorf("text = %q", resp.ResponseText)
	}
	if !approx(resp.EngagementAnalysis, 0.8) {
		t.Errorf("engagement = %v, want 0.8", resp.EngagementAnalysis)
	}
	if !resp.InitiativeTaken || resp.MoodAssessment != "engaged" {
		t.Errorf("unexpected fields: %+v", resp)
	}
	if !approx(resp.LearningFeedback.UserSatisfactionPredicted, 0.7) {
		t.Errorf("satisfaction = %v, want 0.7", resp.LearningFeedback.UserSatisfactionPredicted)
	}
	if result.WordLimitEnforced {
		t.Error("short reply should not be trimmed")
	}
}

func TestNormalizeEmbeddedObject(t *testing.T) {
	raw := "Sure, here you go:\n" +
		`{"response_text": "Here is a brief answer.", "engagement_analysis": 0.6}` +
		"\nHope that helps!"

	result := Normalize(raw)
	if result.Outcome != OutcomeRepaired {
		t.Fatalf("outcome = %s, want repaired", result.Outcome)
	}
	if result.Response.ResponseText != "Here is a brief answer." {
		t.Errorf("text = %q", result.Response.ResponseText)
	}
	// missing fields take defaults
	if result.Response.MoodAssessment != "neutral" {
		t.Errorf("mood = %q, want default neutral", result.Response.MoodAssessment)
	}
	if !approx(result.Response.LearningFeedback.ResponseQuality, 0.5) {
		t.Errorf("quality = %v, want default 0.5", result.Response.LearningFeedback.ResponseQuality)
	}
}

func TestNormalizePlainTextFallback(t *testing.T) {
	result := Normalize("Just a plain conversational reply with no structure at all.")
	if result.Outcome != OutcomeFallback {
		t.Fatalf("outcome = %s, want fallback", result.Outcome)
	}
	resp := result.Response
	if resp.ResponseText != "Just a plain conversational reply with no structure at all." {
		t.Errorf("text = %q", resp.ResponseText)
	}
	if !approx(resp.EngagementAnalysis, 0.6) || resp.MoodAssessment != "thoughtful" {
		t.Errorf("fallback fields: %+v", resp)
	}
}

func TestNormalizeEmptyFallback(t *testing.T) {
	result := Normalize("   ")
	if result.Outcome != OutcomeFallback {
		t.Fatalf("outcome = %s, want fallback", result.Outcome)
	}
	if result.Response.ResponseText != "Let me think about that differently..." {
		t.Errorf("text = %q", result.Response.ResponseText)
	}
}

func TestNormalizeUnparseableObject(t *testing.T) {
	result := Normalize(`{this is not valid json}`)
	if result.Outcome != OutcomeError {
		t.Fatalf("outcome = %s, want error", result.Outcome)
	}
	resp := result.Response
	if !resp.BoredomDetected || !resp.InitiativeTaken {
		t.Errorf("error response fields: %+v", resp)
	}
	if resp.MoodAssessment != "confused" {
		t.Errorf("mood = %q, want confused", resp.MoodAssessment)
	}
}

func TestNormalizeClampsEngagement(t *testing.T) {
	result := Normalize(`{"response_text": "hi there friend", "engagement_analysis": 1.5}`)
	if !approx(result.Response.EngagementAnalysis, 0.9) {
		t.Errorf("engagement = %v, want clamp at 0.9", result.Response.EngagementAnalysis)
	}
}

func TestEnforceWordLimit(t *testing.T) {
	short := "this stays exactly as written"
	if got := EnforceWordLimit(short); got != short {
		t.Errorf("short text changed: %q", got)
	}

	long := strings.TrimSpace(strings.Repeat("word ", 70))
	got := EnforceWordLimit(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("trimmed text = %q, want ellipsis", got)
	}
	if n := len(strings.Fields(got)); n > 56 {
		t.Errorf("trimmed to %d words, want at most 56", n)
	}
}

func TestEnforceWordLimitSentenceBoundary(t *testing.T) {
	// a period near the cut point wins over a hard ellipsis
	words := make([]string, 0, 70)
	for i := 0; i < 54; i++ {
		words = append(words, "word")
	}
	words = append(words, "done.")
	for i := 0; i < 15; i++ {
		words = append(words, "extra")
	}
	got := EnforceWordLimit(strings.Join(words, " "))
	if !strings.HasSuffix(got, "done.") {
		t.Errorf("trimmed text = %q, want cut at sentence boundary", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(`{"response_text": "A calm reply.", "engagement_analysis": 0.7}`)
	second := Normalize(`{"response_text": "` + first.Response.ResponseText + `", "engagement_analysis": 0.7}`)
	if second.Response.ResponseText != first.Response.ResponseText {
		t.Errorf("double normalize changed text: %q vs %q",
			first.Response.ResponseText, second.Response.ResponseText)
	}
}
