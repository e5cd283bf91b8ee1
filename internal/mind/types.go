// /internal/mind/types.go
package mind

import "time"

type Emotion string

const (
	EmotionNeutral       Emotion = "neutral"
	EmotionInterested    Emotion = "interested"
	EmotionEngaged       Emotion = "engaged"
	EmotionExcited       Emotion = "excited"
	EmotionContemplative Emotion = "contemplative"
	EmotionReflective    Emotion = "reflective"
	EmotionThoughtful    Emotion = "thoughtful"
	EmotionTired         Emotion = "tired"
	EmotionBored         Emotion = "bored"
	EmotionConcerned     Emotion = "concerned"
	EmotionEmpathetic    Emotion = "empathetic"
	EmotionHelpful       Emotion = "helpful"
)

// MoodState is the affective snapshot carried between turns. All levels live
// in [0,1].
type MoodState struct {
	PrimaryEmotion  Emotion   `json:"primary_emotion"`
	EnergyLevel     float64   `json:"energy_level"`
	EngagementLevel float64   `json:"engagement_level"`
	CuriosityLevel  float64   `json:"curiosity_level"`
	LastUpdated     time.Time `json:"last_updated"`
}

// ParsedMessage is the feature vector extracted from one user message.
type ParsedMessage struct {
	RawMessage          string
	Length              int
	WordCount           int
	HasQuestion         bool
	ExclamationCount    int
	UppercaseRatio      float64
	EstimatedEngagement float64
}

// MoodHistoryEntry records one turn's resulting mood snapshot with what
// caused it.
type MoodHistoryEntry struct {
	Timestamp       time.Time
	Mood            MoodState
	Trigger         string
	EngagementScore float64
	Amplified       bool
}

// BehavioralParams tune initiative-taking. InitiativeThreshold adapts over
// time inside [0.2, 0.6].
type BehavioralParams struct {
	InitiativeThreshold  float64
	TopicChangeFrequency int
	CuriosityDrive       float64
	EmpathyResponse      float64
	BoredomTolerance     float64
}

func DefaultBehavioralParams() BehavioralParams {
	return BehavioralParams{
		InitiativeThreshold:  0.35,
		TopicChangeFrequency: 4,
		CuriosityDrive:       0.7,
		EmpathyResponse:      0.6,
		BoredomTolerance:     0.4,
	}
}

type InitiativeRecord struct {
	Timestamp        time.Time
	InitiativeTaken  bool
	EngagementResult float64
	Success          bool
	StrongSuccess    bool
}

type TopicRecord struct {
	Name         string
	StartTime    time.Time
	MessageCount int
}

// TopicPerformance summarizes a finished topic for later suggestions.
type TopicPerformance struct {
	Messages             int
	DurationMinutes      float64
	LastUsed             time.Time
	EngagementPerMessage float64
	SuccessScore         float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
