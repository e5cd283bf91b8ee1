// /internal/storage/jsonstore.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/keshon/datastore"
	"github.com/rs/zerolog/log"
)

const (
	keyDNA        = "dna"
	keyState      = "current_state"
	keyExperience = "experience"
	keyChatLog    = "chat_log"
)

// JSONStore keeps session data in a datastore key-value file. Each table
// lives under its own key and is round-tripped through JSON on load.
type JSONStore struct {
	ds   *datastore.DataStore
	data *sessionData
}

func NewJSONStore(path string) (*JSONStore, error) {
	ds, err := datastore.New(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).
			Msg("memory file unreadable, starting over")
		if rmErr := os.Remove(path); rmErr != nil {
			return nil, fmt.Errorf("open memory file: %w", err)
		}
		ds, err = datastore.New(path)
		if err != nil {
			return nil, fmt.Errorf("open memory file: %w", err)
		}
	}
	return &JSONStore{ds: ds, data: newSessionData()}, nil
}

func (s *JSONStore) LoadSessionState() error {
	data := newSessionData()
	ok := true

	if !decodeKey(s.ds, keyDNA, &data.dna) {
		ok = false
	}
	if !decodeKey(s.ds, keyState, &data.state) {
		ok = false
	}
	var exps []Experience
	if decodeKey(s.ds, keyExperience, &exps) {
		for _, exp := range exps {
			data.experience[exp.Category+"."+exp.Key] = exp
		}
	} else {
		ok = false
	}
	if !decodeKey(s.ds, keyChatLog, &data.chatLog) {
		ok = false
	}

	if !ok {
		data = newSessionData()
	}
	s.data = data
	return nil
}

// decodeKey reads one table; a missing key keeps the default value. Reports
// false only on corrupt data.
func decodeKey(ds *datastore.DataStore, key string, out any) bool {
	raw, exists := ds.Get(key)
	if !exists {
		return true
	}
	buf, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(buf, out)
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).
			Msg("memory table corrupt, re-initializing with defaults")
		return false
	}
	return true
}

func (s *JSONStore) SaveSessionState() error {
	exps := make([]Experience, 0, len(s.data.experience))
	for _, exp := range s.data.experience {
		exps = append(exps, exp)
	}
	s.ds.Add(keyDNA, s.data.dna)
	s.ds.Add(keyState, s.data.state)
	s.ds.Add(keyExperience, exps)
	s.ds.Add(keyChatLog, s.data.chatLog)
	return nil
}

func (s *JSONStore) Close() error {
	if err := s.SaveSessionState(); err != nil {
		return err
	}
	return s.ds.Close()
}

func (s *JSONStore) DNAParams() DNAParams       { return s.data.dna }
func (s *JSONStore) CurrentState() CurrentState { return s.data.state }
func (s *JSONStore) UserInterests() []string    { return s.data.userInterests() }
func (s *JSONStore) SuccessfulTopics() []string { return s.data.successfulTopics() }
func (s *JSONStore) MessageCount() int          { return len(s.data.chatLog) }

func (s *JSONStore) UpdateCurrentState(mutate func(*CurrentState)) {
	if mutate != nil {
		mutate(&s.data.state)
	}
}

func (s *JSONStore) UpdateExperientialLearning(sum InteractionSummary) {
	s.data.updateExperientialLearning(sum, time.Now())
}

func (s *JSONStore) RecentMessages(limit int) []Message {
	return s.data.recentMessages(limit)
}

func (s *JSONStore) LogInteraction(rec InteractionRecord) error {
	s.data.chatLog = append(s.data.chatLog, rec)
	return s.SaveSessionState()
}
