package mind

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"middlemind/internal/ai"
	"middlemind/internal/storage"
)

func newTestRunner(t *testing.T) (*Runner, storage.Store) {
	t.Helper()
	store, err := storage.NewJSONStore(filepath.Join(t.TempDir(), "mem.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rng := rand.New(rand.NewSource(42))
	provider := ai.NewMockProvider(rng)
	rawProvider := ai.NewMockProvider(rng)

	runner := NewRunner(store, NewMoodEngine(),
		NewBehaviorEngine(DefaultBehavioralParams(), rng),
		provider, rawProvider, zerolog.Nop())
	if err := runner.InitializeContext(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return runner, store
}

func TestRunnerProcessTurn(t *testing.T) {
	runner, store := newTestRunner(t)

	resp, err := runner.ProcessTurn(context.Background(), "I love hiking in the mountains every weekend honestly")
	if err != nil {
		t.Fatalf("process turn: %v", err)
	}
	if resp.ResponseText == "" {
		t.Fatal("empty response text")
	}

	if store.MessageCount() != 1 {
		t.Errorf("message count = %d, want 1", store.MessageCount())
	}
	st := store.CurrentState()
	if st.MessagesCount != 1 {
		t.Errorf("state messages count = %d, want 1", st.MessagesCount)
	}
	if st.CurrentMood == "" || st.EngagementTrend == "" {
		t.Errorf("state not mirrored: %+v", st)
	}
}

func TestRunnerAccumulatesHistory(t *testing.T) {
	runner, store := newTestRunner(t)
	ctx := context.Background()

	for _, msg := range []string{
		"tell me about your favorite books please",
		"what makes a story worth reading?",
		"I think endings matter most personally",
	} {
		if _, err := runner.ProcessTurn(ctx, msg); err != nil {
			t.Fatalf("process turn: %v", err)
		}
	}

	if store.MessageCount() != 3 {
		t.Errorf("message count = %d, want 3", store.MessageCount())
	}
	msgs := store.RecentMessages(5)
	if len(msgs) != 6 {
		t.Errorf("recent messages = %d, want 6", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "tell me about your favorite books please" {
		t.Errorf("first message = %+v", msgs[0])
	}
}

func TestRunnerSurvivesBackendFailure(t *testing.T) {
	store, err := storage.NewJSONStore(filepath.Join(t.TempDir(), "mem.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	runner := NewRunner(store, NewMoodEngine(),
		NewBehaviorEngine(DefaultBehavioralParams(), rand.New(rand.NewSource(1))),
		failingProvider{}, failingProvider{}, zerolog.Nop())
	if err := runner.InitializeContext(); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	resp, err := runner.ProcessTurn(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("turn should survive backend failure: %v", err)
	}
	if resp.Error != "API_FALLBACK_USED" {
		t.Errorf("error marker = %q, want API_FALLBACK_USED", resp.Error)
	}
	if resp.ResponseText == "" {
		t.Error("fallback reply missing response text")
	}

	recent := store.RecentMessages(1)
	if len(recent) != 2 {
		t.Fatalf("recent messages = %d, want 2", len(recent))
	}
}

type failingProvider struct{}

func (failingProvider) InitializeContext(string) {}

func (failingProvider) Generate(context.Context, ai.Request) (string, error) {
	return "", context.DeadlineExceeded
}

func (failingProvider) HealthCheck(context.Context) bool { return false }
