// /internal/storage/workbook.go
package storage

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names, matching the memory file layout.
const (
	sheetDNA        = "DNA"
	sheetState      = "Current_State"
	sheetExperience = "Experience"
	sheetChatLog    = "Chat_Log"
)

var chatLogColumns = []string{
	"id", "timestamp", "session_id", "user_message", "raw_llm_response",
	"processed_llm_response", "final_ai_response", "mood_state",
	"energy_level", "engagement_level", "curiosity_level", "boredom_level",
	"initiative_taken", "topic_persistence", "topic_freshness",
	"response_word_count", "word_limit_enforced", "debug_raw_call_success",
	"debug_mood_change", "debug_energy_change", "debug_engagement_trend",
	"comparison_length_difference", "comparison_word_similarity",
	"comparison_significant_change", "natural_variety_score",
	"initiative_guidance", "action_suggestions",
}

var dnaDescriptions = map[string]string{
	"dna_curiosity_level":      "How curious and questioning",
	"dna_empathy_base":         "Base empathy level",
	"dna_humor_level":          "Tendency to use humor",
	"dna_formality_level":      "How formal vs casual",
	"dna_initiative_threshold": "Threshold for taking initiative",
}

// WorkbookStore persists session data to an xlsx workbook with one sheet per
// table. The whole workbook is rewritten on save, like the original memory
// file was.
type WorkbookStore struct {
	path string
	data *sessionData
}

func NewWorkbookStore(path string) (*WorkbookStore, error) {
	s := &WorkbookStore{path: path, data: newSessionData()}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeWorkbook(); err != nil {
			return nil, fmt.Errorf("create memory workbook: %w", err)
		}
		log.Info().Str("file", path).Msg("created new memory workbook")
	}
	return s, nil
}

// LoadSessionState reads all sheets. Any read or parse failure re-initializes
// the store with defaults; the unreadable file is only overwritten on the
// next successful save.
func (s *WorkbookStore) LoadSessionState() error {
	if err := s.load(); err != nil {
		log.Error().Err(err).Str("file", s.path).
			Msg("memory workbook unreadable, re-initializing with defaults")
		s.data = newSessionData()
	}
	return nil
}

func (s *WorkbookStore) load() error {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := newSessionData()

	dnaRows, err := f.GetRows(sheetDNA)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheetDNA, err)
	}
	for _, row := range skipHeader(dnaRows) {
		if len(row) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return fmt.Errorf("bad DNA value %q: %w", row[1], err)
		}
		switch row[0] {
		case "dna_curiosity_level":
			data.dna.CuriosityLevel = v
		case "dna_empathy_base":
			data.dna.EmpathyBase = v
		case "dna_humor_level":
			data.dna.HumorLevel = v
		case "dna_formality_level":
			data.dna.FormalityLevel = v
		case "dna_initiative_threshold":
			data.dna.InitiativeThreshold = v
		}
	}

	stateRows, err := f.GetRows(sheetState)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheetState, err)
	}
	for _, row := range skipHeader(stateRows) {
		if len(row) < 2 {
			continue
		}
		val := row[1]
		switch row[0] {
		case "st_current_mood":
			data.state.CurrentMood = val
		case "st_conversation_energy":
			data.state.ConversationEnergy = parseFloat(val)
		case "st_topic_focus":
			data.state.TopicFocus = val
		case "st_messages_count":
			data.state.MessagesCount = parseInt(val)
		case "st_last_initiative":
			data.state.LastInitiative = val
		case "st_boredom_level":
			data.state.BoredomLevel = parseFloat(val)
		case "st_engagement_trend":
			data.state.EngagementTrend = val
		case "st_initiative_taken":
			data.state.InitiativeTaken = parseBool(val)
		}
	}

	expRows, err := f.GetRows(sheetExperience)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheetExperience, err)
	}
	for _, row := range skipHeader(expRows) {
		if len(row) < 5 {
			continue
		}
		exp := Experience{
			Category:   row[0],
			Key:        row[1],
			Value:      row[2],
			Score:      parseFloat(row[3]),
			Confidence: parseFloat(row[4]),
		}
		if len(row) > 5 {
			exp.LastUpdated = parseTime(row[5])
		}
		data.experience[exp.Category+"."+exp.Key] = exp
	}

	logRows, err := f.GetRows(sheetChatLog)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheetChatLog, err)
	}
	if len(logRows) > 0 {
		idx := make(map[string]int, len(logRows[0]))
		for i, name := range logRows[0] {
			idx[name] = i
		}
		for _, row := range logRows[1:] {
			data.chatLog = append(data.chatLog, parseChatLogRow(row, idx))
		}
	}

	s.data = data
	return nil
}

func (s *WorkbookStore) SaveSessionState() error {
	return s.writeWorkbook()
}

func (s *WorkbookStore) Close() error {
	return s.writeWorkbook()
}

func (s *WorkbookStore) DNAParams() DNAParams       { return s.data.dna }
func (s *WorkbookStore) CurrentState() CurrentState { return s.data.state }
func (s *WorkbookStore) UserInterests() []string    { return s.data.userInterests() }
func (s *WorkbookStore) SuccessfulTopics() []string { return s.data.successfulTopics() }
func (s *WorkbookStore) MessageCount() int          { return len(s.data.chatLog) }

func (s *WorkbookStore) UpdateCurrentState(mutate func(*CurrentState)) {
	if mutate != nil {
		mutate(&s.data.state)
	}
}

func (s *WorkbookStore) UpdateExperientialLearning(sum InteractionSummary) {
	s.data.updateExperientialLearning(sum, time.Now())
}

func (s *WorkbookStore) RecentMessages(limit int) []Message {
	return s.data.recentMessages(limit)
}

func (s *WorkbookStore) LogInteraction(rec InteractionRecord) error {
	s.data.chatLog = append(s.data.chatLog, rec)
	return s.writeWorkbook()
}

func (s *WorkbookStore) writeWorkbook() error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDNA); err != nil {
		return err
	}
	now := time.Now().Format(time.RFC3339)

	writeRow(f, sheetDNA, 1, []any{"parameter", "value", "description"})
	dna := s.data.dna
	dnaRows := []struct {
		name  string
		value float64
	}{
		{"dna_curiosity_level", dna.CuriosityLevel},
		{"dna_empathy_base", dna.EmpathyBase},
		{"dna_humor_level", dna.HumorLevel},
		{"dna_formality_level", dna.FormalityLevel},
		{"dna_initiative_threshold", dna.InitiativeThreshold},
	}
	for i, r := range dnaRows {
		writeRow(f, sheetDNA, i+2, []any{r.name, r.value, dnaDescriptions[r.name]})
	}

	if _, err := f.NewSheet(sheetState); err != nil {
		return err
	}
	writeRow(f, sheetState, 1, []any{"parameter", "value", "updated"})
	st := s.data.state
	stateRows := []struct {
		name  string
		value any
	}{
		{"st_current_mood", st.CurrentMood},
		{"st_conversation_energy", st.ConversationEnergy},
		{"st_topic_focus", st.TopicFocus},
		{"st_messages_count", st.MessagesCount},
		{"st_last_initiative", st.LastInitiative},
		{"st_boredom_level", st.BoredomLevel},
		{"st_engagement_trend", st.EngagementTrend},
		{"st_initiative_taken", st.InitiativeTaken},
	}
	for i, r := range stateRows {
		writeRow(f, sheetState, i+2, []any{r.name, r.value, now})
	}

	if _, err := f.NewSheet(sheetExperience); err != nil {
		return err
	}
	writeRow(f, sheetExperience, 1,
		[]any{"category", "key", "value", "score", "confidence", "last_updated"})
	row := 2
	for _, exp := range s.data.experience {
		writeRow(f, sheetExperience, row, []any{
			exp.Category, exp.Key, exp.Value, exp.Score, exp.Confidence,
			exp.LastUpdated.Format(time.RFC3339),
		})
		row++
	}

	if _, err := f.NewSheet(sheetChatLog); err != nil {
		return err
	}
	header := make([]any, len(chatLogColumns))
	for i, c := range chatLogColumns {
		header[i] = c
	}
	writeRow(f, sheetChatLog, 1, header)
	for i, rec := range s.data.chatLog {
		writeRow(f, sheetChatLog, i+2, chatLogRowValues(rec))
	}

	return f.SaveAs(s.path)
}

func chatLogRowValues(rec InteractionRecord) []any {
	return []any{
		rec.ID, rec.Timestamp.Format(time.RFC3339), rec.SessionID,
		rec.UserMessage, rec.RawReply, rec.ProcessedReply, rec.FinalResponse,
		rec.MoodState, rec.EnergyLevel, rec.EngagementLevel,
		rec.CuriosityLevel, rec.BoredomLevel, rec.InitiativeTaken,
		rec.TopicPersistence, rec.TopicFreshness, rec.ResponseWordCount,
		rec.WordLimitEnforced, rec.RawCallSuccess, rec.MoodChange,
		rec.EnergyChange, rec.EngagementTrend, rec.LengthDifference,
		rec.WordSimilarity, rec.SignificantChange, rec.NaturalVariety,
		rec.Guidance, rec.ActionSuggestions,
	}
}

func parseChatLogRow(row []string, idx map[string]int) InteractionRecord {
	cell := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	return InteractionRecord{
		ID:                cell("id"),
		Timestamp:         parseTime(cell("timestamp")),
		SessionID:         cell("session_id"),
		UserMessage:       cell("user_message"),
		RawReply:          cell("raw_llm_response"),
		ProcessedReply:    cell("processed_llm_response"),
		FinalResponse:     cell("final_ai_response"),
		MoodState:         cell("mood_state"),
		EnergyLevel:       parseFloat(cell("energy_level")),
		EngagementLevel:   parseFloat(cell("engagement_level")),
		CuriosityLevel:    parseFloat(cell("curiosity_level")),
		BoredomLevel:      parseFloat(cell("boredom_level")),
		InitiativeTaken:   parseBool(cell("initiative_taken")),
		TopicPersistence:  parseInt(cell("topic_persistence")),
		TopicFreshness:    parseFloat(cell("topic_freshness")),
		ResponseWordCount: parseInt(cell("response_word_count")),
		WordLimitEnforced: parseBool(cell("word_limit_enforced")),
		RawCallSuccess:    parseBool(cell("debug_raw_call_success")),
		MoodChange:        cell("debug_mood_change"),
		EnergyChange:      cell("debug_energy_change"),
		EngagementTrend:   cell("debug_engagement_trend"),
		LengthDifference:  parseInt(cell("comparison_length_difference")),
		WordSimilarity:    parseFloat(cell("comparison_word_similarity")),
		SignificantChange: parseBool(cell("comparison_significant_change")),
		NaturalVariety:    parseFloat(cell("natural_variety_score")),
		Guidance:          cell("initiative_guidance"),
		ActionSuggestions: cell("action_suggestions"),
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
