package mind

import "testing"

func TestCompareResponsesIdentical(t *testing.T) {
	m := CompareResponses("the same reply", "the same reply")
	if !approx(m.WordSimilarity, 1.0) {
		t.Errorf("similarity = %v, want 1.0", m.WordSimilarity)
	}
	if m.SignificantChange {
		t.Error("identical replies flagged as significant change")
	}
	if m.LengthDifference != 0 {
		t.Errorf("length difference = %d, want 0", m.LengthDifference)
	}
}

func TestCompareResponsesDisjoint(t *testing.T) {
	m := CompareResponses("alpha beta gamma", "delta epsilon zeta eta")
	if !approx(m.WordSimilarity, 0) {
		t.Errorf("similarity = %v, want 0", m.WordSimilarity)
	}
	if !m.SignificantChange {
		t.Error("disjoint replies not flagged as significant change")
	}
	if m.LengthDifference != 1 {
		t.Errorf("length difference = %d, want 1", m.LengthDifference)
	}
}

func TestVarietyScorePenalizesBareWait(t *testing.T) {
	// "wait" counts as a stock marker without any punctuation after it
	m := CompareResponses("x", "Let me wait here for a moment")
	if !approx(m.NaturalVariety, 0.5) {
		t.Errorf("variety = %v, want 0.5 with stock marker present", m.NaturalVariety)
	}
}

func TestVarietyScorePenalizesStockOpeners(t *testing.T) {
	stock := CompareResponses("x", "Wait, hold on, you know what I mean")
	natural := CompareResponses("x", "Curiosity about new places keeps travel exciting")
	if stock.NaturalVariety >= natural.NaturalVariety {
		t.Errorf("stock %v should score below natural %v",
			stock.NaturalVariety, natural.NaturalVariety)
	}
	if !approx(natural.NaturalVariety, 1.0) {
		t.Errorf("natural variety = %v, want 1.0", natural.NaturalVariety)
	}
}
