package mind

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseMessageShortMessage(t *testing.T) {
	m := ParseMessage("ok")
	if m.WordCount != 1 {
		t.Fatalf("word count = %d, want 1", m.WordCount)
	}
	if !approx(m.EstimatedEngagement, 0.1) {
		t.Errorf("engagement = %v, want 0.1", m.EstimatedEngagement)
	}
}

func TestParseMessageLongQuestion(t *testing.T) {
	text := "what do you believe will happen when the weather turns cold across the northern region today?"
	m := ParseMessage(text)
	if !m.HasQuestion {
		t.Fatal("expected question detected")
	}
	if m.WordCount != 16 {
		t.Fatalf("word count = %d, want 16", m.WordCount)
	}
	if !approx(m.EstimatedEngagement, 0.9) {
		t.Errorf("engagement = %v, want clamp at 0.9", m.EstimatedEngagement)
	}
}

func TestParseMessageHighEnergy(t *testing.T) {
	m := ParseMessage("WOW this is AMAZING!!!")
	if m.ExclamationCount != 3 {
		t.Fatalf("exclamations = %d, want 3", m.ExclamationCount)
	}
	if m.UppercaseRatio <= 0.3 {
		t.Fatalf("uppercase ratio = %v, want > 0.3", m.UppercaseRatio)
	}
	if !approx(m.EstimatedEngagement, 0.9) {
		t.Errorf("engagement = %v, want clamp at 0.9", m.EstimatedEngagement)
	}
}

func TestParseMessageModerate(t *testing.T) {
	m := ParseMessage("the weather has been cold lately")
	if m.WordCount != 6 {
		t.Fatalf("word count = %d, want 6", m.WordCount)
	}
	if !approx(m.EstimatedEngagement, 0.5) {
		t.Errorf("engagement = %v, want 0.5", m.EstimatedEngagement)
	}
}

func TestParseMessageEmotionalAndPersonal(t *testing.T) {
	m := ParseMessage("i feel happy about the results")
	// emotional word and personal indicator each count once
	if !approx(m.EstimatedEngagement, 0.65) {
		t.Errorf("engagement = %v, want 0.65", m.EstimatedEngagement)
	}
}
