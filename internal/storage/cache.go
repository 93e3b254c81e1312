package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/vocabgo/pkg/models"
)

// ErrCacheCorrupt marks a cache artifact that failed structural validation.
// It never leaves the store: callers of LoadStates just get an empty state.
var ErrCacheCorrupt = errors.New("cache artifact is corrupt")

// The cache artifact is a JSON object with a single recognized key holding
// one six-element tuple per learned word:
//
//	{"WORDLIST": [[word, translation, ef, repetitions, interval, lastReviewMs], ...]}
//
// Unknown keys are ignored for forward compatibility; a missing WORDLIST key
// means no words learned yet. Any row with the wrong arity or a wrong field
// type invalidates the whole artifact.
type cacheFile struct {
	Wordlist []json.RawMessage `json:"WORDLIST"`
}

func decodeCache(data []byte) ([]*models.LearningState, error) {
	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}

	states := make([]*models.LearningState, 0, len(file.Wordlist))
	for i, raw := range file.Wordlist {
		st, err := decodeCacheRow(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCacheCorrupt, i, err)
		}
		states = append(states, st)
	}
	return states, nil
}

func decodeCacheRow(raw json.RawMessage) (*models.LearningState, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("expected 6 fields, got %d", len(fields))
	}

	st := &models.LearningState{}
	if err := json.Unmarshal(fields[0], &st.Word); err != nil {
		return nil, fmt.Errorf("word: %v", err)
	}
	if err := json.Unmarshal(fields[1], &st.Translation); err != nil {
		return nil, fmt.Errorf("translation: %v", err)
	}
	if err := json.Unmarshal(fields[2], &st.EaseFactor); err != nil {
		return nil, fmt.Errorf("ease factor: %v", err)
	}
	if err := json.Unmarshal(fields[3], &st.RepetitionCount); err != nil {
		return nil, fmt.Errorf("repetition count: %v", err)
	}
	if err := json.Unmarshal(fields[4], &st.IntervalDays); err != nil {
		return nil, fmt.Errorf("interval: %v", err)
	}
	if err := json.Unmarshal(fields[5], &st.LastReviewEpochMs); err != nil {
		return nil, fmt.Errorf("last review: %v", err)
	}
	return st, nil
}

func encodeCache(states []*models.LearningState) ([]byte, error) {
	rows := make([][]interface{}, 0, len(states))
	for _, st := range states {
		rows = append(rows, []interface{}{
			st.Word, st.Translation, st.EaseFactor,
			st.RepetitionCount, st.IntervalDays, st.LastReviewEpochMs,
		})
	}
	return json.Marshal(map[string]interface{}{"WORDLIST": rows})
}
