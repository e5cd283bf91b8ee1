// /internal/mind/runner.go
package mind

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"middlemind/internal/ai"
	"middlemind/internal/storage"
)

const processedReplyLimit = 500

// Runner wires the engines, the store and the generation backends into one
// conversational session.
type Runner struct {
	store       storage.Store
	mood        *MoodEngine
	behavior    *BehaviorEngine
	provider    ai.Provider
	rawProvider ai.Provider
	sessionID   string
	log         zerolog.Logger
}

func NewRunner(store storage.Store, mood *MoodEngine, behavior *BehaviorEngine,
	provider, rawProvider ai.Provider, log zerolog.Logger) *Runner {
	return &Runner{
		store:       store,
		mood:        mood,
		behavior:    behavior,
		provider:    provider,
		rawProvider: rawProvider,
		sessionID:   time.Now().Format("20060102_150405"),
		log:         log,
	}
}

func (r *Runner) SessionID() string { return r.sessionID }

// InitializeContext loads persisted state and hands the backend its system
// prompt for the session.
func (r *Runner) InitializeContext() error {
	if err := r.store.LoadSessionState(); err != nil {
		return fmt.Errorf("load session state: %w", err)
	}
	prompt := BuildSystemPrompt(r.store.CurrentState(), r.store.DNAParams())
	r.provider.InitializeContext(prompt)
	r.log.Info().Str("session", r.sessionID).Msg("session context initialized")
	return nil
}

// ProcessTurn runs one full turn: feature extraction, mood and behavior
// updates, raw and structured generation, normalization, learning, state
// mirroring and logging. The raw call is observational; its failure never
// fails the turn.
func (r *Runner) ProcessTurn(ctx context.Context, userText string) (NormalizedResponse, error) {
	start := time.Now()

	msg := ParseMessage(userText)
	oldMood := r.mood.Mood()

	mood := r.mood.Update(msg)
	snap := r.behavior.Analyze(r.store.RecentMessages(5), mood)
	guidance := r.behavior.InitiativeGuidance(snap)
	actions := r.behavior.SuggestActions(snap)

	genCtx := BuildGenerationContext(
		userText, mood, snap, r.store.DNAParams(),
		r.store.RecentMessages(5), r.store.UserInterests(),
		r.store.MessageCount(), guidance, actions,
	)
	payload, err := json.Marshal(genCtx)
	if err != nil {
		return NormalizedResponse{}, fmt.Errorf("marshal generation context: %w", err)
	}

	hints := ai.Hints{
		Mood:          string(mood.PrimaryEmotion),
		Energy:        mood.EnergyLevel,
		Boredom:       snap.BoredomLevel,
		TopicMessages: snap.TopicPersistence,
		HasQuestion:   msg.HasQuestion,
	}

	rawReply, rawOK := r.rawCall(ctx, userText)

	reply, err := r.provider.Generate(ctx, ai.Request{
		UserMessage: userText,
		ContextJSON: payload,
		Hints:       hints,
	})
	logGeneration(r.log, "primary", string(payload), reply, err)
	if err != nil {
		r.log.Error().Err(err).Msg("generation failed, using fallback reply")
		reply = ai.FallbackReplyJSON
	}

	result := Normalize(reply)
	resp := result.Response

	r.learn(resp, snap)

	if resp.TopicShiftSuggestion != "" {
		r.behavior.UpdateTopicTracking(resp.TopicShiftSuggestion)
	}

	r.mirrorState(mood, snap, resp)

	rec := r.buildRecord(start, userText, rawReply, rawOK, reply, resp,
		oldMood, mood, snap, guidance, actions, result.WordLimitEnforced)
	if err := r.store.LogInteraction(rec); err != nil {
		r.log.Error().Err(err).Msg("log interaction")
	}
	if err := r.store.SaveSessionState(); err != nil {
		r.log.Error().Err(err).Msg("save session state")
	}

	return resp, nil
}

// rawCall fetches the unfiltered reply for comparison.
func (r *Runner) rawCall(ctx context.Context, userText string) (string, bool) {
	reply, err := r.rawProvider.Generate(ctx, ai.Request{UserMessage: userText, RawMode: true})
	logGeneration(r.log, "raw", userText, reply, err)
	if err != nil {
		return ai.RawUnavailable, false
	}
	return reply, true
}

func (r *Runner) learn(resp NormalizedResponse, snap BehaviorSnapshot) {
	feedback := resp.LearningFeedback.ResponseQuality
	r.mood.LearnFromFeedback(resp.EngagementAnalysis, feedback)
	r.behavior.LearnFromOutcome(resp.InitiativeTaken, resp.EngagementAnalysis)
	r.store.UpdateExperientialLearning(storage.InteractionSummary{
		AIResponse:      resp.ResponseText,
		EngagementScore: resp.EngagementAnalysis,
		FeedbackScore:   feedback,
		InitiativeTaken: resp.InitiativeTaken,
		BoredomLevel:    snap.BoredomLevel,
	})
}

func (r *Runner) mirrorState(mood MoodState, snap BehaviorSnapshot, resp NormalizedResponse) {
	r.store.UpdateCurrentState(func(st *storage.CurrentState) {
		st.CurrentMood = string(mood.PrimaryEmotion)
		st.ConversationEnergy = mood.EnergyLevel
		st.MessagesCount++
		st.BoredomLevel = snap.BoredomLevel
		switch {
		case mood.EngagementLevel > 0.7:
			st.EngagementTrend = "high"
		case mood.EngagementLevel > 0.4:
			st.EngagementTrend = "stable"
		default:
			st.EngagementTrend = "low"
		}
		st.InitiativeTaken = resp.InitiativeTaken
		if resp.InitiativeTaken {
			st.LastInitiative = time.Now().Format(time.RFC3339)
		}
		if resp.TopicShiftSuggestion != "" {
			st.TopicFocus = resp.TopicShiftSuggestion
		}
	})
}

func (r *Runner) buildRecord(start time.Time, userText, rawReply string, rawOK bool,
	processed string, resp NormalizedResponse, oldMood, mood MoodState,
	snap BehaviorSnapshot, guidance, actions []string, limitEnforced bool) storage.InteractionRecord {

	metrics := CompareResponses(rawReply, resp.ResponseText)
	wordCount := len(strings.Fields(resp.ResponseText))

	if len(processed) > processedReplyLimit {
		processed = processed[:processedReplyLimit] + "..."
	}

	return storage.InteractionRecord{
		ID:                uuid.NewString(),
		Timestamp:         start,
		SessionID:         r.sessionID,
		UserMessage:       userText,
		RawReply:          rawReply,
		ProcessedReply:    processed,
		FinalResponse:     resp.ResponseText,
		MoodState:         string(mood.PrimaryEmotion),
		EnergyLevel:       mood.EnergyLevel,
		EngagementLevel:   mood.EngagementLevel,
		CuriosityLevel:    mood.CuriosityLevel,
		BoredomLevel:      snap.BoredomLevel,
		InitiativeTaken:   resp.InitiativeTaken,
		TopicPersistence:  snap.TopicPersistence,
		TopicFreshness:    TopicFreshness(snap.TopicPersistence),
		ResponseWordCount: wordCount,
		WordLimitEnforced: limitEnforced,
		RawCallSuccess:    rawOK,
		MoodChange:        fmt.Sprintf("'%s' -> '%s'", oldMood.PrimaryEmotion, mood.PrimaryEmotion),
		EnergyChange:      fmt.Sprintf("'%.2f' -> '%.2f'", oldMood.EnergyLevel, mood.EnergyLevel),
		EngagementTrend:   snap.BehavioralMode,
		LengthDifference:  metrics.LengthDifference,
		WordSimilarity:    metrics.WordSimilarity,
		SignificantChange: metrics.SignificantChange,
		NaturalVariety:    metrics.NaturalVariety,
		Guidance:          strings.Join(guidance, ","),
		ActionSuggestions: strings.Join(actions, ","),
	}
}
