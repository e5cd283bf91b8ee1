// /internal/storage/storage.go
package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	recentMessagesDefault = 5
	interestsLimit        = 5
	successfulTopicsLimit = 3
)

// DNAParams are the fixed personality parameters. They are read at session
// start and never mutated by the turn loop.
type DNAParams struct {
	CuriosityLevel      float64 `json:"dna_curiosity_level"`
	EmpathyBase         float64 `json:"dna_empathy_base"`
	HumorLevel          float64 `json:"dna_humor_level"`
	FormalityLevel      float64 `json:"dna_formality_level"`
	InitiativeThreshold float64 `json:"dna_initiative_threshold"`
}

// CurrentState mirrors the live session state into the store after each turn.
type CurrentState struct {
	CurrentMood        string  `json:"st_current_mood"`
	ConversationEnergy float64 `json:"st_conversation_energy"`
	TopicFocus         string  `json:"st_topic_focus"`
	MessagesCount      int     `json:"st_messages_count"`
	LastInitiative     string  `json:"st_last_initiative"`
	BoredomLevel       float64 `json:"st_boredom_level"`
	EngagementTrend    string  `json:"st_engagement_trend"`
	InitiativeTaken    bool    `json:"st_initiative_taken"`
}

// Experience is one learned association, keyed category.key.
type Experience struct {
	Category    string    `json:"category"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Score       float64   `json:"score"`
	Confidence  float64   `json:"confidence"`
	LastUpdated time.Time `json:"last_updated"`
}

// Message is one entry of the recent-conversation window.
type Message struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// InteractionRecord is one chat-log row: the full per-turn trace including
// both backend replies and the comparison metrics.
type InteractionRecord struct {
	ID                string    `json:"id"`
	Timestamp         time.Time `json:"timestamp"`
	SessionID         string    `json:"session_id"`
	UserMessage       string    `json:"user_message"`
	RawReply          string    `json:"raw_llm_response"`
	ProcessedReply    string    `json:"processed_llm_response"`
	FinalResponse     string    `json:"final_ai_response"`
	MoodState         string    `json:"mood_state"`
	EnergyLevel       float64   `json:"energy_level"`
	EngagementLevel   float64   `json:"engagement_level"`
	CuriosityLevel    float64   `json:"curiosity_level"`
	BoredomLevel      float64   `json:"boredom_level"`
	InitiativeTaken   bool      `json:"initiative_taken"`
	TopicPersistence  int       `json:"topic_persistence"`
	TopicFreshness    float64   `json:"topic_freshness"`
	ResponseWordCount int       `json:"response_word_count"`
	WordLimitEnforced bool      `json:"word_limit_enforced"`
	RawCallSuccess    bool      `json:"debug_raw_call_success"`
	MoodChange        string    `json:"debug_mood_change"`
	EnergyChange      string    `json:"debug_energy_change"`
	EngagementTrend   string    `json:"debug_engagement_trend"`
	LengthDifference  int       `json:"comparison_length_difference"`
	WordSimilarity    float64   `json:"comparison_word_similarity"`
	SignificantChange bool      `json:"comparison_significant_change"`
	NaturalVariety    float64   `json:"natural_variety_score"`
	Guidance          string    `json:"initiative_guidance"`
	ActionSuggestions string    `json:"action_suggestions"`
}

// InteractionSummary feeds experiential learning after a turn.
type InteractionSummary struct {
	UserMessage     string
	AIResponse      string
	EngagementScore float64
	FeedbackScore   float64
	InitiativeTaken bool
	BoredomLevel    float64
}

// Store is the persistence collaborator: DNA parameters, current state,
// experiential associations and the chat log. A failed load re-initializes
// a fresh default structure instead of propagating the error.
type Store interface {
	LoadSessionState() error
	SaveSessionState() error
	Close() error

	DNAParams() DNAParams
	CurrentState() CurrentState
	UpdateCurrentState(mutate func(*CurrentState))

	UserInterests() []string
	SuccessfulTopics() []string
	UpdateExperientialLearning(s InteractionSummary)

	RecentMessages(limit int) []Message
	MessageCount() int
	LogInteraction(rec InteractionRecord) error
}

// New picks a backend from the file extension: .json uses the datastore
// key-value file, anything else the xlsx workbook.
func New(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONStore(path)
	default:
		return NewWorkbookStore(path)
	}
}

// DefaultDNA returns the initial personality parameters.
func DefaultDNA() DNAParams {
	return DNAParams{
		CuriosityLevel:      0.7,
		EmpathyBase:         0.6,
		HumorLevel:          0.5,
		FormalityLevel:      0.4,
		InitiativeThreshold: 0.6,
	}
}

// DefaultState returns the initial session state.
func DefaultState() CurrentState {
	return CurrentState{
		CurrentMood:        "neutral",
		ConversationEnergy: 0.5,
		TopicFocus:         "general",
		LastInitiative:     "never",
		EngagementTrend:    "stable",
	}
}

// sessionData is the in-memory body shared by both backends.
type sessionData struct {
	dna        DNAParams
	state      CurrentState
	experience map[string]Experience // keyed category.key
	chatLog    []InteractionRecord
}

func newSessionData() *sessionData {
	return &sessionData{
		dna:        DefaultDNA(),
		state:      DefaultState(),
		experience: make(map[string]Experience),
	}
}

func (d *sessionData) userInterests() []string {
	var interests []string
	for key, exp := range d.experience {
		if strings.HasPrefix(key, "user.interest.") && exp.Confidence > 0.6 {
			interests = append(interests, exp.Value)
		}
		if len(interests) >= interestsLimit {
			break
		}
	}
	return interests
}

func (d *sessionData) successfulTopics() []string {
	var topics []string
	for key, exp := range d.experience {
		if strings.HasPrefix(key, "topic.success.") && exp.Confidence > 0.7 {
			topics = append(topics, exp.Value)
		}
		if len(topics) >= successfulTopicsLimit {
			break
		}
	}
	return topics
}

// updateExperientialLearning blends the turn's engagement into the running
// engagement.score association and counts response patterns that worked.
func (d *sessionData) updateExperientialLearning(s InteractionSummary, now time.Time) {
	cur, ok := d.experience["engagement.score"]
	if !ok {
		cur = Experience{Category: "engagement", Key: "score", Score: 0.5, Confidence: 0.1}
	}
	cur.Score = 0.8*cur.Score + 0.2*s.EngagementScore
	cur.Value = fmt.Sprintf("%.3f", cur.Score)
	cur.Confidence = minFloat(1.0, cur.Confidence+0.1)
	cur.LastUpdated = now
	d.experience["engagement.score"] = cur

	if s.EngagementScore > 0.7 {
		key := "pattern.good_follow_up"
		if s.InitiativeTaken {
			key = "pattern.positive_response"
		}
		pat, ok := d.experience[key]
		if !ok {
			parts := strings.SplitN(key, ".", 2)
			pat = Experience{Category: parts[0], Key: parts[1]}
		}
		pat.Score++
		pat.Value = fmt.Sprintf("%d", int(pat.Score))
		pat.Confidence = minFloat(1.0, pat.Confidence+0.05)
		pat.LastUpdated = now
		d.experience[key] = pat
	}
}

// recentMessages flattens the tail of the chat log into a role/content
// window, user turn then assistant turn per record.
func (d *sessionData) recentMessages(limit int) []Message {
	if limit <= 0 {
		limit = recentMessagesDefault
	}
	start := len(d.chatLog) - limit
	if start < 0 {
		start = 0
	}
	var msgs []Message
	for _, rec := range d.chatLog[start:] {
		msgs = append(msgs,
			Message{Role: "user", Content: rec.UserMessage, Timestamp: rec.Timestamp},
			Message{Role: "assistant", Content: rec.FinalResponse, Timestamp: rec.Timestamp},
		)
	}
	return msgs
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
