package mind

import (
	"math"
	"testing"
)

func TestMoodEngineDefaults(t *testing.T) {
	e := NewMoodEngine()
	m := e.Mood()
	if m.PrimaryEmotion != EmotionNeutral {
		t.Errorf("emotion = %s, want neutral", m.PrimaryEmotion)
	}
	if !approx(m.EnergyLevel, 0.5) || !approx(m.EngagementLevel, 0.5) || !approx(m.CuriosityLevel, 0.7) {
		t.Errorf("unexpected initial levels: %+v", m)
	}
}

func TestMoodEngineBoredTrigger(t *testing.T) {
	e := NewMoodEngine()
	m := e.Update(ParseMessage("whatever, this is boring"))
	if m.PrimaryEmotion != EmotionBored {
		t.Fatalf("emotion = %s, want bored", m.PrimaryEmotion)
	}
	if !approx(m.EngagementLevel, 0.2) || !approx(m.EnergyLevel, 0.3) {
		t.Errorf("levels = eng %v energy %v, want 0.2 / 0.3", m.EngagementLevel, m.EnergyLevel)
	}
}

func TestMoodEngineUpsetTrigger(t *testing.T) {
	e := NewMoodEngine()
	m := e.Update(ParseMessage("this makes them furious"))
	if m.PrimaryEmotion != EmotionConcerned {
		t.Fatalf("emotion = %s, want concerned", m.PrimaryEmotion)
	}
	// high intensity word pins engagement at the cap
	if !approx(m.EngagementLevel, 0.89) {
		t.Errorf("engagement = %v, want 0.89", m.EngagementLevel)
	}
}

func TestMoodEngineExcitedTrigger(t *testing.T) {
	e := NewMoodEngine()
	m := e.Update(ParseMessage("WOW this is AMAZING!!!"))
	if m.PrimaryEmotion != EmotionExcited {
		t.Fatalf("emotion = %s, want excited", m.PrimaryEmotion)
	}
	// "amazing" is high intensity: engagement 0.8+0.09, energy lifted to
	// the 0.9 cap by the high estimate
	if !approx(m.EngagementLevel, 0.89) {
		t.Errorf("engagement = %v, want 0.89", m.EngagementLevel)
	}
	if !approx(m.EnergyLevel, 0.9) {
		t.Errorf("energy = %v, want 0.9", m.EnergyLevel)
	}
}

func TestMoodEngineCategoryOrder(t *testing.T) {
	// "upset" precedes "bored" in the table, so a message carrying both
	// resolves to concerned
	e := NewMoodEngine()
	m := e.Update(ParseMessage("so annoyed and bored"))
	if m.PrimaryEmotion != EmotionConcerned {
		t.Errorf("emotion = %s, want concerned", m.PrimaryEmotion)
	}
}

func TestMoodEngineGradualDrift(t *testing.T) {
	e := NewMoodEngine()
	m := e.Update(ParseMessage("ok"))
	// short message estimate 0.1: amplified drift lands engagement at the
	// estimate, and low estimate drains energy
	if !approx(m.EngagementLevel, 0.1) {
		t.Errorf("engagement = %v, want 0.1", m.EngagementLevel)
	}
	if !approx(m.EnergyLevel, 0.35) {
		t.Errorf("energy = %v, want 0.35", m.EnergyLevel)
	}
}

func TestMoodEngineCuriosity(t *testing.T) {
	e := NewMoodEngine()
	m := e.Update(ParseMessage("how does this work?"))
	if !approx(m.CuriosityLevel, math.Min(0.9, 0.7+0.1)) {
		t.Errorf("curiosity = %v, want 0.8", m.CuriosityLevel)
	}

	m = e.Update(ParseMessage("the weather has been cold lately"))
	if m.CuriosityLevel >= 0.8 {
		t.Errorf("curiosity = %v, want decay below 0.8", m.CuriosityLevel)
	}
}

func TestMoodEngineHistorySnapshots(t *testing.T) {
	e := NewMoodEngine()
	e.Update(ParseMessage("whatever, this is boring"))

	hist := e.History()
	if len(hist) != 1 {
		t.Fatalf("history len = %d, want 1", len(hist))
	}
	entry := hist[0]
	if entry.Trigger != "bored" || !entry.Amplified {
		t.Errorf("entry = %+v, want amplified bored trigger", entry)
	}
	// each entry carries the full mood snapshot, not just the emotion
	if entry.Mood.PrimaryEmotion != EmotionBored {
		t.Errorf("snapshot emotion = %s, want bored", entry.Mood.PrimaryEmotion)
	}
	if !approx(entry.Mood.EngagementLevel, 0.2) || !approx(entry.Mood.EnergyLevel, 0.3) {
		t.Errorf("snapshot levels = %+v, want 0.2 / 0.3", entry.Mood)
	}
}

func TestMoodEngineHistoryBounded(t *testing.T) {
	e := NewMoodEngine()
	for i := 0; i < 80; i++ {
		e.Update(ParseMessage("the weather has been cold lately"))
	}
	if n := len(e.History()); n > 50 {
		t.Errorf("history len = %d, want <= 50", n)
	}
}

func TestMoodEngineLearnFromFeedback(t *testing.T) {
	e := NewMoodEngine()
	e.LearnFromFeedback(0.5, 0.9)
	if !approx(e.Mood().EnergyLevel, 0.55) {
		t.Errorf("energy = %v, want 0.55 after strong feedback", e.Mood().EnergyLevel)
	}

	e2 := NewMoodEngine()
	e2.Update(ParseMessage("ok")) // energy 0.35
	e2.Update(ParseMessage("ok")) // energy 0.2
	e2.LearnFromFeedback(0.5, 0.2)
	// low energy with poor feedback recovers toward the middle
	if got := e2.Mood().EnergyLevel; !approx(got, 0.24) {
		t.Errorf("energy = %v, want 0.24", got)
	}
}

func TestMoodEngineStagnation(t *testing.T) {
	e := NewMoodEngine()
	if e.DetectStagnation() {
		t.Fatal("stagnation with no samples")
	}
	for i := 0; i < 3; i++ {
		e.LearnFromFeedback(0.3, 0.5)
	}
	if !e.DetectStagnation() {
		t.Error("expected stagnation after three low-engagement turns")
	}
}

func TestMoodEngineDramaticAction(t *testing.T) {
	e := NewMoodEngine()
	if e.EvaluateDramaticAction().TakeAction {
		t.Fatal("fresh engine should not call for dramatic action")
	}

	e.Update(ParseMessage("whatever, this is boring"))
	for i := 0; i < 3; i++ {
		e.LearnFromFeedback(0.3, 0.35)
	}
	action := e.EvaluateDramaticAction()
	if !action.TakeAction {
		t.Fatalf("expected dramatic action, triggers = %v", action.Triggers)
	}
	if len(action.Triggers) < 2 {
		t.Errorf("triggers = %v, want at least two", action.Triggers)
	}
	if action.Intensity > 0.8 {
		t.Errorf("intensity = %v, want cap at 0.8", action.Intensity)
	}
}
