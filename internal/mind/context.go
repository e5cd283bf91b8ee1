// /internal/mind/context.go
package mind

import (
	"math"

	"middlemind/internal/storage"
)

// GenerationContext is the JSON payload sent to the backend each turn: the
// user message plus the affective and behavioral state it should react to.
type GenerationContext struct {
	UserMessage           string            `json:"user_message"`
	CurrentMood           string            `json:"current_mood"`
	EnergyLevel           float64           `json:"energy_level"`
	EngagementLevel       float64           `json:"engagement_level"`
	CuriosityLevel        float64           `json:"curiosity_level"`
	BoredomLevel          float64           `json:"boredom_level"`
	TopicPersistence      int               `json:"topic_persistence"`
	TopicFreshness        float64           `json:"topic_freshness"`
	ConversationEnergy    float64           `json:"conversation_energy"`
	ConversationHistory   []storage.Message `json:"conversation_history"`
	UserInterests         []string          `json:"user_interests"`
	PersonalityCuriosity  float64           `json:"personality_curiosity"`
	PersonalityEmpathy    float64           `json:"personality_empathy"`
	PersonalityInitiative float64           `json:"personality_initiative"`
	MessagesCount         int               `json:"messages_count"`
	InitiativeGuidance    []string          `json:"initiative_guidance,omitempty"`
	ActionSuggestions     []string          `json:"action_suggestions,omitempty"`
}

// TopicFreshness decays linearly with messages on the current topic and
// bottoms out at zero after eight.
func TopicFreshness(persistence int) float64 {
	return math.Max(0, 1-float64(persistence)/8.0)
}

// BuildGenerationContext assembles the per-turn payload.
func BuildGenerationContext(
	userMessage string,
	mood MoodState,
	snap BehaviorSnapshot,
	dna storage.DNAParams,
	historyMsgs []storage.Message,
	interests []string,
	messagesCount int,
	guidance, actions []string,
) GenerationContext {
	return GenerationContext{
		UserMessage:           userMessage,
		CurrentMood:           string(mood.PrimaryEmotion),
		EnergyLevel:           mood.EnergyLevel,
		EngagementLevel:       mood.EngagementLevel,
		CuriosityLevel:        mood.CuriosityLevel,
		BoredomLevel:          snap.BoredomLevel,
		TopicPersistence:      snap.TopicPersistence,
		TopicFreshness:        TopicFreshness(snap.TopicPersistence),
		ConversationEnergy:    snap.ConversationEnergy,
		ConversationHistory:   historyMsgs,
		UserInterests:         interests,
		PersonalityCuriosity:  dna.CuriosityLevel,
		PersonalityEmpathy:    dna.EmpathyBase,
		PersonalityInitiative: dna.InitiativeThreshold,
		MessagesCount:         messagesCount,
		InitiativeGuidance:    guidance,
		ActionSuggestions:     actions,
	}
}
