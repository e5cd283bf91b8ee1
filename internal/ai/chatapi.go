// /internal/ai/chatapi.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"middlemind/internal/config"
)

const rawSystemPrompt = "You are a helpful AI assistant. Respond naturally and conversationally."

const jsonInstruction = `

CRITICAL: You MUST respond ONLY with valid JSON in this exact format:
{
  "response_text": "your actual response here",
  "engagement_analysis": 0.8,
  "boredom_detected": false,
  "topic_shift_suggestion": "",
  "mood_assessment": "engaged",
  "initiative_taken": true,
  "learning_feedback": {"response_quality": 0.8, "user_satisfaction_predicted": 0.7}
}
Do not add any text before or after this JSON. Start directly with { and end with }.`

// ChatAPIProvider talks to any chat-completions compatible endpoint.
type ChatAPIProvider struct {
	client       *http.Client
	baseURL      string
	model        string
	apiKey       string
	maxTokens    int
	temperature  float64
	systemPrompt string
}

func NewChatAPIProvider(cfg *config.Config) *ChatAPIProvider {
	return &ChatAPIProvider{
		client:      &http.Client{Timeout: 30 * time.Second},
		baseURL:     cfg.AIBaseURL,
		model:       cfg.AIModel,
		apiKey:      cfg.AIAPIKey,
		maxTokens:   cfg.AIMaxTokens,
		temperature: cfg.AITemperature,
	}
}

func (p *ChatAPIProvider) InitializeContext(systemPrompt string) {
	p.systemPrompt = systemPrompt
}

func (p *ChatAPIProvider) Generate(ctx context.Context, req Request) (string, error) {
	var messages []Message
	if req.RawMode {
		messages = []Message{
			{Role: "system", Content: rawSystemPrompt},
			{Role: "user", Content: req.UserMessage},
		}
	} else {
		messages = []Message{
			{Role: "system", Content: p.systemPrompt + jsonInstruction},
			{Role: "user", Content: string(req.ContextJSON)},
		}
	}
	return p.call(ctx, messages)
}

func (p *ChatAPIProvider) call(ctx context.Context, messages []Message) (string, error) {
	payload := map[string]any{
		"model":       p.model,
		"messages":    messages,
		"temperature": p.temperature,
		"max_tokens":  p.maxTokens,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chatapi http %d: %s", resp.StatusCode, truncate(body))
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("chatapi returned html")
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chatapi empty choices")
	}

	reply := cleanReply(parsed.Choices[0].Message.Content)
	if isGarbageResponse(reply) {
		return "", fmt.Errorf("chatapi returned garbage")
	}

	return reply, nil
}

func (p *ChatAPIProvider) HealthCheck(ctx context.Context) bool {
	_, err := p.call(ctx, []Message{{Role: "user", Content: "ping"}})
	return err == nil
}

func truncate(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}
