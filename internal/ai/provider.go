// /internal/ai/provider.go
package ai

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog/log"

	"middlemind/internal/config"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Hints carries the few state values a backend may use to shape its reply
// without having to parse the full context payload.
type Hints struct {
	Mood          string
	Energy        float64
	Boredom       float64
	TopicMessages int
	HasQuestion   bool
}

// Request is one generation call. In raw mode only UserMessage is sent, with
// a plain assistant system prompt; otherwise ContextJSON is the user payload
// and the stored session system prompt applies.
type Request struct {
	UserMessage string
	ContextJSON []byte
	RawMode     bool
	Hints       Hints
}

type Provider interface {
	InitializeContext(systemPrompt string)
	Generate(ctx context.Context, req Request) (string, error)
	HealthCheck(ctx context.Context) bool
}

// RawUnavailable stands in for the unfiltered reply when the raw call fails.
const RawUnavailable = "[raw response unavailable]"

// FallbackReplyJSON is returned in place of the backend reply when the
// primary call fails, so the rest of the turn can proceed normally.
const FallbackReplyJSON = `{
  "response_text": "I'm having trouble connecting right now. Could you try rephrasing that?",
  "engagement_analysis": 0.3,
  "boredom_detected": false,
  "topic_shift_suggestion": "",
  "mood_assessment": "apologetic",
  "initiative_taken": false,
  "learning_feedback": {"response_quality": 0.2, "user_satisfaction_predicted": 0.3},
  "error": "API_FALLBACK_USED"
}`

func New(cfg *config.Config, rng *rand.Rand) Provider {
	switch cfg.AIProvider {
	case "chatapi":
		return NewChatAPIProvider(cfg)
	case "mock", "":
		return NewMockProvider(rng)
	default:
		log.Warn().Str("provider", cfg.AIProvider).
			Msg("unsupported AI_PROVIDER, using mock")
		return NewMockProvider(rng)
	}
}
