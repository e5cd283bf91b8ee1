// /internal/mind/emotions.go
package mind

import (
	"math"
	"strings"
	"time"
)

type emotionalTrigger struct {
	category string
	keywords []string
	emotion  Emotion
}

// Trigger table, checked in order; the first category with a keyword hit
// wins and overrides the gradual mood drift for this turn.
var emotionalTriggers = []emotionalTrigger{
	{"upset", []string{"upset", "angry", "frustrated", "mad", "annoyed", "furious", "pissed"}, EmotionConcerned},
	{"sad", []string{"sad", "depressed", "down", "crying", "heartbroken", "devastated"}, EmotionEmpathetic},
	{"excited", []string{"excited", "thrilled", "amazing", "awesome", "fantastic", "incredible"}, EmotionExcited},
	{"bored", []string{"boring", "bored", "tired", "whatever", "meh", "uninteresting"}, EmotionBored},
	{"confused", []string{"confused", "lost", "unclear", "what", "huh", "understand"}, EmotionHelpful},
	{"thoughtful", []string{"think", "consider", "reflect", "ponder", "contemplate", "wonder"}, EmotionContemplative},
	{"calm", []string{"peaceful", "calm", "relaxed", "serene", "quiet", "still"}, EmotionReflective},
}

var highIntensityWords = map[string]bool{
	"furious": true, "devastated": true, "incredible": true, "amazing": true,
}

var lowIntensityWords = map[string]bool{
	"think": true, "consider": true, "calm": true, "peaceful": true,
}

type trendSample struct {
	Engagement float64
	Feedback   float64
}

// MoodEngine evolves the affective state from message features and learns
// from per-turn feedback.
type MoodEngine struct {
	mood    MoodState
	history *history[MoodHistoryEntry]
	trend   *history[trendSample]
}

func NewMoodEngine() *MoodEngine {
	return &MoodEngine{
		mood: MoodState{
			PrimaryEmotion:  EmotionNeutral,
			EnergyLevel:     0.5,
			EngagementLevel: 0.5,
			CuriosityLevel:  0.7,
			LastUpdated:     time.Now(),
		},
		history: newHistory[MoodHistoryEntry](50, 25),
		trend:   newHistory[trendSample](20, 10),
	}
}

func (e *MoodEngine) Mood() MoodState { return e.mood }

func (e *MoodEngine) History() []MoodHistoryEntry { return e.history.Items() }

// Update advances the mood for one user message. A keyword trigger overrides
// the emotion outright; otherwise engagement drifts halfway toward the
// estimate, amplified, and the emotion is re-derived from the levels.
func (e *MoodEngine) Update(msg ParsedMessage) MoodState {
	lower := strings.ToLower(msg.RawMessage)

	triggerLabel := "normal_input"
	triggered := false
	for _, trig := range emotionalTriggers {
		hit := ""
		for _, kw := range trig.keywords {
			if strings.Contains(lower, kw) {
				hit = kw
				break
			}
		}
		if hit == "" {
			continue
		}
		intensity := 0.7
		if highIntensityWords[hit] {
			intensity = 0.9
		} else if lowIntensityWords[hit] {
			intensity = 0.4
		}
		e.applyTrigger(trig, intensity)
		triggerLabel = trig.category
		triggered = true
		break
	}

	if !triggered {
		blended := 0.5*e.mood.EngagementLevel + 0.5*msg.EstimatedEngagement
		delta := blended - e.mood.EngagementLevel
		e.mood.EngagementLevel = clamp(e.mood.EngagementLevel+delta*2.0, 0.1, 0.9)
	}

	// Energy follows the engagement estimate regardless of triggers.
	est := msg.EstimatedEngagement
	switch {
	case est > 0.7:
		e.mood.EnergyLevel = math.Min(0.9, e.mood.EnergyLevel+0.15)
	case est < 0.3:
		e.mood.EnergyLevel = math.Max(0.1, e.mood.EnergyLevel-0.15)
	case est < 0.4:
		e.mood.EnergyLevel = math.Max(0.2, e.mood.EnergyLevel-0.05)
	}

	if !triggered {
		e.mood.PrimaryEmotion = deriveEmotion(e.mood.EngagementLevel, e.mood.EnergyLevel)
	}

	if msg.HasQuestion {
		e.mood.CuriosityLevel = math.Min(0.9, e.mood.CuriosityLevel+0.1)
	} else {
		e.mood.CuriosityLevel = math.Max(0.3, e.mood.CuriosityLevel-0.02)
	}

	e.mood.LastUpdated = time.Now()
	e.history.Push(MoodHistoryEntry{
		Timestamp:       e.mood.LastUpdated,
		Mood:            e.mood,
		Trigger:         triggerLabel,
		EngagementScore: msg.EstimatedEngagement,
		Amplified:       triggered,
	})
	return e.mood
}

func (e *MoodEngine) applyTrigger(trig emotionalTrigger, i float64) {
	m := &e.mood
	m.PrimaryEmotion = trig.emotion
	switch trig.category {
	case "upset":
		m.EngagementLevel = math.Min(0.9, 0.8+i*0.1)
		m.EnergyLevel = math.Min(0.9, 0.7+i*0.2)
		m.CuriosityLevel = math.Min(0.9, 0.8+i*0.1)
	case "sad":
		m.EngagementLevel = math.Max(0.5, 0.7-i*0.1)
		m.EnergyLevel = math.Max(0.2, 0.4-i*0.1)
	case "excited":
		m.EngagementLevel = math.Min(0.9, 0.8+i*0.1)
		m.EnergyLevel = math.Min(0.9, 0.8+i*0.1)
	case "bored":
		m.EngagementLevel = 0.2
		m.EnergyLevel = 0.3
	case "confused":
		m.EngagementLevel = math.Min(0.8, 0.7+i*0.1)
		m.CuriosityLevel = math.Min(0.9, 0.8+i*0.1)
	case "thoughtful":
		m.EngagementLevel = math.Min(0.7, 0.6+i*0.1)
		m.EnergyLevel = math.Max(0.2, 0.4-i*0.1)
		m.CuriosityLevel = math.Min(0.8, 0.7+i*0.1)
	case "calm":
		m.EngagementLevel = math.Min(0.6, 0.5+i*0.1)
		m.EnergyLevel = math.Max(0.2, 0.3)
		m.CuriosityLevel = math.Min(0.6, 0.5+i*0.1)
	}
}

func deriveEmotion(engagement, energy float64) Emotion {
	switch {
	case engagement > 0.8 && energy > 0.7:
		return EmotionExcited
	case engagement > 0.7 && energy > 0.5:
		return EmotionEngaged
	case engagement > 0.6 && energy < 0.4:
		return EmotionContemplative
	case engagement > 0.5 && energy < 0.3:
		return EmotionReflective
	case engagement > 0.4:
		return EmotionInterested
	case engagement > 0.3 && energy < 0.4:
		return EmotionThoughtful
	case engagement > 0.2:
		return EmotionNeutral
	case energy < 0.3:
		return EmotionTired
	default:
		return EmotionBored
	}
}

// DetectStagnation reports whether the conversation trend has gone flat.
// Needs at least three samples.
func (e *MoodEngine) DetectStagnation() bool {
	if e.trend.Len() < 3 {
		return false
	}
	last := e.trend.Last(3)

	sum := 0.0
	for _, s := range last {
		sum += s.Engagement
	}
	if sum/3 < 0.4 {
		return true
	}

	if last[0].Engagement > last[1].Engagement && last[1].Engagement > last[2].Engagement {
		return true
	}

	return e.mood.EngagementLevel < 0.3
}

type DramaticAction struct {
	TakeAction bool
	Triggers   []string
	Intensity  float64
}

// EvaluateDramaticAction collects distress signals; two or more call for a
// deliberate shake-up of the conversation.
func (e *MoodEngine) EvaluateDramaticAction() DramaticAction {
	var triggers []string

	if e.DetectStagnation() {
		triggers = append(triggers, "STAGNATION_DETECTED")
	}
	if e.mood.EnergyLevel < 0.2 {
		triggers = append(triggers, "VERY_LOW_ENERGY")
	}
	if e.mood.PrimaryEmotion == EmotionBored || e.mood.PrimaryEmotion == EmotionTired {
		triggers = append(triggers, "NEGATIVE_EMOTION")
	}
	if e.trend.Len() >= 3 {
		last := e.trend.Last(3)
		sum := 0.0
		for _, s := range last {
			sum += s.Feedback
		}
		if sum/3 < 0.4 {
			triggers = append(triggers, "POOR_FEEDBACK")
		}
	}

	return DramaticAction{
		TakeAction: len(triggers) >= 2,
		Triggers:   triggers,
		Intensity:  math.Min(0.8, float64(len(triggers))*0.25),
	}
}

// LearnFromFeedback records one turn's outcome and nudges energy: strong
// feedback lifts it, poor feedback pulls it back toward the middle.
func (e *MoodEngine) LearnFromFeedback(engagement, feedback float64) {
	e.trend.Push(trendSample{Engagement: engagement, Feedback: feedback})

	if feedback > 0.8 {
		e.mood.EnergyLevel = math.Min(0.9, e.mood.EnergyLevel+0.05)
	} else if feedback < 0.3 {
		if e.mood.EnergyLevel > 0.7 {
			e.mood.EnergyLevel *= 0.8
		} else if e.mood.EnergyLevel < 0.3 {
			e.mood.EnergyLevel = math.Min(0.6, e.mood.EnergyLevel*1.2)
		}
	}
}
