// /internal/mind/behavior.go
package mind

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"middlemind/internal/storage"
)

// BehaviorSnapshot is the per-turn behavioral read: boredom, initiative
// pressure and the overall conversational mode.
type BehaviorSnapshot struct {
	AvgEngagement       float64
	BoredomLevel        float64
	TopicPersistence    int
	TimeSinceChange     float64
	InitiativeNeeded    bool
	InitiativeType      string
	InitiativeIntensity float64
	InitiativeScore     float64
	InitiativeTriggers  []string
	ConversationEnergy  float64
	PatternBreakNeeded  bool
	BehavioralMode      string
}

// BehaviorEngine tracks topic wear and decides when to take initiative. Its
// threshold adapts to how past initiatives landed.
type BehaviorEngine struct {
	params      BehavioralParams
	topic       TopicRecord
	performance map[string]TopicPerformance
	initiatives *history[InitiativeRecord]
	rng         *rand.Rand
}

func NewBehaviorEngine(params BehavioralParams, rng *rand.Rand) *BehaviorEngine {
	return &BehaviorEngine{
		params:      params,
		topic:       TopicRecord{Name: "general", StartTime: time.Now()},
		performance: make(map[string]TopicPerformance),
		initiatives: newHistory[InitiativeRecord](20, 10),
		rng:         rng,
	}
}

func (b *BehaviorEngine) Params() BehavioralParams { return b.params }

func (b *BehaviorEngine) Topic() TopicRecord { return b.topic }

// Analyze reads the mood and recent messages and produces the behavioral
// snapshot for this turn. Each call with messages counts one more message on
// the current topic.
func (b *BehaviorEngine) Analyze(recent []storage.Message, mood MoodState) BehaviorSnapshot {
	if len(recent) > 0 {
		b.topic.MessageCount++
	}

	snap := BehaviorSnapshot{
		AvgEngagement:      mood.EngagementLevel,
		TopicPersistence:   b.topic.MessageCount,
		TimeSinceChange:    time.Since(b.topic.StartTime).Minutes(),
		ConversationEnergy: mood.EnergyLevel,
	}

	snap.BoredomLevel = b.boredomLevel(recent, mood)
	snap.InitiativeScore, snap.InitiativeTriggers = b.initiativeScore(snap.BoredomLevel, mood)

	switch {
	case snap.InitiativeScore >= 0.5:
		snap.InitiativeType = "strong"
		snap.InitiativeIntensity = math.Min(0.8, snap.InitiativeScore)
	case snap.InitiativeScore >= 0.25:
		snap.InitiativeType = "moderate"
		snap.InitiativeIntensity = snap.InitiativeScore
	case snap.InitiativeScore > 0.05:
		snap.InitiativeType = "gentle"
		snap.InitiativeIntensity = snap.InitiativeScore
	default:
		snap.InitiativeType = "none"
	}
	snap.InitiativeNeeded = snap.InitiativeScore > 0.05

	snap.PatternBreakNeeded = patternBreakNeeded(recent)
	snap.BehavioralMode = behavioralMode(mood)
	return snap
}

func (b *BehaviorEngine) boredomLevel(recent []storage.Message, mood MoodState) float64 {
	boredom := 0.0

	if mood.EngagementLevel < 0.4 {
		boredom += 0.3
	} else if mood.EngagementLevel < 0.6 {
		boredom += 0.1
	}
	if mood.EnergyLevel < 0.3 {
		boredom += 0.2
	}

	userMsgs := filterRole(recent, "user")
	if n := len(userMsgs); n > 0 {
		tail := userMsgs
		if n > 3 {
			tail = userMsgs[n-3:]
		}
		total := 0
		for _, m := range tail {
			total += len(strings.Fields(m.Content))
		}
		avg := float64(total) / float64(len(tail))
		if avg < 4 {
			boredom += 0.2
		} else if avg < 6 {
			boredom += 0.1
		}
	}

	if excess := b.topic.MessageCount - b.params.TopicChangeFrequency; excess > 0 {
		boredom += math.Min(0.3, float64(excess)*0.1)
	}
	if mood.PrimaryEmotion == EmotionBored || mood.PrimaryEmotion == EmotionTired {
		boredom += 0.2
	}
	return math.Min(1.0, boredom)
}

func (b *BehaviorEngine) initiativeScore(boredom float64, mood MoodState) (float64, []string) {
	score := 0.0
	var triggers []string

	if boredom > 0.5 {
		score += 0.3
		triggers = append(triggers, "MODERATE_BOREDOM")
	} else if boredom > 0.3 {
		score += 0.15
		triggers = append(triggers, "MILD_BOREDOM")
	}

	if mood.EngagementLevel < b.params.InitiativeThreshold {
		score += 0.25
		triggers = append(triggers, "LOW_ENGAGEMENT")
	}

	freq := b.params.TopicChangeFrequency
	if float64(b.topic.MessageCount) > float64(freq)*1.5 {
		score += 0.25
		triggers = append(triggers, "TOPIC_FATIGUE")
	} else if b.topic.MessageCount > freq {
		score += 0.1
		triggers = append(triggers, "TOPIC_AGING")
	}

	switch mood.PrimaryEmotion {
	case EmotionBored, EmotionTired:
		score += 0.3
		triggers = append(triggers, "NEGATIVE_EMOTION")
	case EmotionContemplative, EmotionReflective:
		score += 0.1
		triggers = append(triggers, "THOUGHTFUL_MOMENT")
	case EmotionNeutral:
		if mood.EngagementLevel < 0.5 {
			score += 0.15
			triggers = append(triggers, "EMOTIONAL_FLATNESS")
		}
	}

	if b.rng.Float64() < b.params.CuriosityDrive*0.1 {
		score += 0.15
		triggers = append(triggers, "SPONTANEOUS_CURIOSITY")
	}

	return score, triggers
}

func patternBreakNeeded(recent []storage.Message) bool {
	if len(recent) < 4 {
		return false
	}
	replies := filterRole(recent, "assistant")
	if len(replies) < 3 {
		return false
	}
	replies = replies[len(replies)-3:]
	lo, hi := math.MaxInt, 0
	for _, m := range replies {
		n := len(strings.Fields(m.Content))
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi-lo < 5
}

func behavioralMode(mood MoodState) string {
	switch {
	case mood.PrimaryEmotion == EmotionContemplative ||
		mood.PrimaryEmotion == EmotionReflective ||
		mood.PrimaryEmotion == EmotionThoughtful:
		return "contemplative"
	case mood.PrimaryEmotion == EmotionTired || mood.EnergyLevel < 0.3:
		return "low_energy"
	case mood.PrimaryEmotion == EmotionExcited && mood.EnergyLevel > 0.7:
		return "energetic"
	case mood.EngagementLevel > 0.7:
		return "engaged"
	case mood.EngagementLevel < 0.3:
		return "disengaged"
	default:
		return "balanced"
	}
}

// InitiativeGuidance renders the snapshot as directives for the backend.
func (b *BehaviorEngine) InitiativeGuidance(snap BehaviorSnapshot) []string {
	var out []string

	switch snap.BehavioralMode {
	case "contemplative":
		out = append(out, "MOOD_CONTEMPLATIVE")
	case "low_energy":
		out = append(out, "MOOD_LOW_ENERGY")
	case "energetic":
		out = append(out, "MOOD_ENERGETIC")
	case "disengaged":
		out = append(out, "ENGAGEMENT_LOW")
	}

	switch snap.InitiativeType {
	case "strong":
		out = append(out, "TAKE_INITIATIVE")
	case "moderate":
		out = append(out, "SHOW_INTEREST")
	case "gentle":
		out = append(out, "BE_CURIOUS")
	}

	for _, t := range snap.InitiativeTriggers {
		switch t {
		case "TOPIC_FATIGUE":
			out = append(out, "TOPIC_STALE")
		case "MODERATE_BOREDOM":
			out = append(out, "CONVERSATION_STAGNANT")
		}
	}

	if snap.PatternBreakNeeded {
		out = append(out, "BREAK_PATTERN")
	}
	return out
}

// SuggestActions proposes concrete conversational moves for the snapshot.
func (b *BehaviorEngine) SuggestActions(snap BehaviorSnapshot) []string {
	switch snap.BehavioralMode {
	case "contemplative":
		return []string{"thoughtful_question", "deeper_exploration"}
	case "low_energy":
		return []string{"gentle_nudge", "quiet_interest"}
	case "energetic":
		return []string{"enthusiastic_response", "dynamic_question"}
	}
	if snap.BoredomLevel > 0.5 {
		return []string{"refresh_conversation", "new_perspective"}
	}
	if snap.AvgEngagement < 0.3 {
		return []string{"spark_interest", "find_connection"}
	}
	return nil
}

// UpdateTopicTracking closes out the current topic, scoring how it went, and
// starts a fresh one.
func (b *BehaviorEngine) UpdateTopicTracking(name string) {
	now := time.Now()
	duration := now.Sub(b.topic.StartTime).Minutes()
	msgs := b.topic.MessageCount

	b.performance[b.topic.Name] = TopicPerformance{
		Messages:             msgs,
		DurationMinutes:      duration,
		LastUsed:             now,
		EngagementPerMessage: float64(msgs) / math.Max(1, duration),
		SuccessScore:         clamp(float64(msgs-2)/5.0, 0, 1),
	}

	if name == "" {
		name = "topic_" + now.Format("150405")
	}
	b.topic = TopicRecord{Name: name, StartTime: now}
}

func (b *BehaviorEngine) TopicPerformance() map[string]TopicPerformance {
	return b.performance
}

// LearnFromOutcome records how an initiative (or its absence) landed and
// adapts the threshold once enough initiatives have accumulated.
func (b *BehaviorEngine) LearnFromOutcome(taken bool, engagement float64) {
	b.initiatives.Push(InitiativeRecord{
		Timestamp:        time.Now(),
		InitiativeTaken:  taken,
		EngagementResult: engagement,
		Success:          engagement > 0.6,
		StrongSuccess:    engagement > 0.8,
	})

	if b.initiatives.Len() < 4 {
		return
	}
	var attempted, succeeded int
	for _, rec := range b.initiatives.Last(5) {
		if !rec.InitiativeTaken {
			continue
		}
		attempted++
		if rec.Success {
			succeeded++
		}
	}
	if attempted == 0 {
		return
	}
	successRate := float64(succeeded) / float64(attempted)
	if successRate > 0.8 {
		b.params.InitiativeThreshold = math.Min(0.6, b.params.InitiativeThreshold+0.05)
	} else if successRate < 0.3 {
		b.params.InitiativeThreshold = math.Max(0.2, b.params.InitiativeThreshold-0.05)
	}
}

// RecentSuccessRate reports how recent initiatives fared; 0.5 until there is
// enough signal.
func (b *BehaviorEngine) RecentSuccessRate() float64 {
	if b.initiatives.Len() < 2 {
		return 0.5
	}
	var attempted, succeeded int
	for _, rec := range b.initiatives.Last(5) {
		if !rec.InitiativeTaken {
			continue
		}
		attempted++
		if rec.Success {
			succeeded++
		}
	}
	if attempted == 0 {
		return 0.5
	}
	return float64(succeeded) / float64(attempted)
}

func filterRole(msgs []storage.Message, role string) []storage.Message {
	var out []storage.Message
	for _, m := range msgs {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}
