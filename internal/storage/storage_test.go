package storage

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExperientialLearningBlendsEngagement(t *testing.T) {
	d := newSessionData()
	now := time.Now()

	d.updateExperientialLearning(InteractionSummary{EngagementScore: 0.9}, now)
	exp, ok := d.experience["engagement.score"]
	if !ok {
		t.Fatal("missing engagement.score association")
	}
	if !approx(exp.Score, 0.8*0.5+0.2*0.9) {
		t.Errorf("score = %v, want blended 0.58", exp.Score)
	}
	if !approx(exp.Confidence, 0.2) {
		t.Errorf("confidence = %v, want 0.2", exp.Confidence)
	}

	for i := 0; i < 20; i++ {
		d.updateExperientialLearning(InteractionSummary{EngagementScore: 0.9}, now)
	}
	if got := d.experience["engagement.score"].Confidence; !approx(got, 1.0) {
		t.Errorf("confidence = %v, want cap at 1.0", got)
	}
}

func TestExperientialLearningPatterns(t *testing.T) {
	d := newSessionData()
	now := time.Now()

	d.updateExperientialLearning(InteractionSummary{EngagementScore: 0.8, InitiativeTaken: true}, now)
	if _, ok := d.experience["pattern.positive_response"]; !ok {
		t.Error("high engagement with initiative should record positive_response")
	}

	d.updateExperientialLearning(InteractionSummary{EngagementScore: 0.8}, now)
	if _, ok := d.experience["pattern.good_follow_up"]; !ok {
		t.Error("high engagement without initiative should record good_follow_up")
	}

	d.updateExperientialLearning(InteractionSummary{EngagementScore: 0.4}, now)
	if pat := d.experience["pattern.good_follow_up"]; pat.Score != 1 {
		t.Errorf("low engagement should not bump patterns, score = %v", pat.Score)
	}
}

func TestUserInterestsFiltersByConfidence(t *testing.T) {
	d := newSessionData()
	d.experience["user.interest.hiking"] = Experience{
		Category: "user.interest", Key: "hiking", Value: "hiking", Confidence: 0.8,
	}
	d.experience["user.interest.chess"] = Experience{
		Category: "user.interest", Key: "chess", Value: "chess", Confidence: 0.3,
	}
	d.experience["topic.success.travel"] = Experience{
		Category: "topic.success", Key: "travel", Value: "travel", Confidence: 0.9,
	}

	interests := d.userInterests()
	if len(interests) != 1 || interests[0] != "hiking" {
		t.Errorf("interests = %v, want [hiking]", interests)
	}

	topics := d.successfulTopics()
	if len(topics) != 1 || topics[0] != "travel" {
		t.Errorf("topics = %v, want [travel]", topics)
	}
}

func TestRecentMessagesFlattensLog(t *testing.T) {
	d := newSessionData()
	for i, pair := range [][2]string{
		{"first question", "first answer"},
		{"second question", "second answer"},
		{"third question", "third answer"},
	} {
		d.chatLog = append(d.chatLog, InteractionRecord{
			UserMessage:   pair[0],
			FinalResponse: pair[1],
			Timestamp:     time.Now().Add(time.Duration(i) * time.Second),
		})
	}

	msgs := d.recentMessages(2)
	if len(msgs) != 4 {
		t.Fatalf("len = %d, want 4", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "second question" {
		t.Errorf("first message = %+v, want second question", msgs[0])
	}
	if msgs[3].Role != "assistant" || msgs[3].Content != "third answer" {
		t.Errorf("last message = %+v, want third answer", msgs[3])
	}
}

func TestNewPicksBackendFromExtension(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir + "/mem.json")
	if err != nil {
		t.Fatalf("json backend: %v", err)
	}
	if _, ok := s.(*JSONStore); !ok {
		t.Errorf("got %T, want *JSONStore", s)
	}
	s.Close()

	s, err = New(dir + "/mem.xlsx")
	if err != nil {
		t.Fatalf("workbook backend: %v", err)
	}
	if _, ok := s.(*WorkbookStore); !ok {
		t.Errorf("got %T, want *WorkbookStore", s)
	}
	s.Close()
}
