package selector

import (
	"errors"
	"math/rand"
	"time"

	"github.com/example/vocabgo/internal/quota"
	"github.com/example/vocabgo/internal/spaced_repetition"
	"github.com/example/vocabgo/pkg/models"
)

var (
	// ErrNoWords means the list has neither new nor learned candidates
	ErrNoWords = errors.New("word list has no words to study")
	// ErrNoLearnedWords means nothing is reviewable yet: the quota is
	// exhausted or review-only mode is on, and no word has been learned
	ErrNoLearnedWords = errors.New("word list has no learned words yet")
)

// Selector decides whether the next round introduces a new word or reviews a
// learned one, and picks the concrete word.
type Selector struct {
	sm2 *spaced_repetition.SM2
	rng *rand.Rand
	// Clock, overridable in tests
	Now func() time.Time
}

// New creates a selector using the given scheduler and random source
func New(sm *spaced_repetition.SM2, rng *rand.Rand) *Selector {
	return &Selector{sm2: sm, rng: rng, Now: time.Now}
}

// Next picks the next word to present. A new word is preferred while the
// daily quota allows it; otherwise a learned word is drawn at random with
// probability proportional to how overdue it is. New words come back as a
// provisional state that the caller commits only on confirmation.
func (s *Selector) Next(snap *models.WordListSnapshot, tracker *quota.Tracker, reviewOnly bool) (*models.SelectionResult, error) {
	now := s.Now()

	if !reviewOnly && tracker.AllowNewItem(quota.Today(now)) {
		if unlearned := snap.Unlearned(); len(unlearned) > 0 {
			entry := unlearned[s.rng.Intn(len(unlearned))]
			return &models.SelectionResult{
				Word:        entry.Word,
				Translation: entry.Translation,
				IsNew:       true,
				State:       s.sm2.NewState(entry),
			}, nil
		}
	}

	if candidates := snap.ReviewCandidates(); len(candidates) > 0 {
		nowMs := now.UnixMilli()
		weights := make([]float64, len(candidates))
		for i, st := range candidates {
			weights[i] = s.sm2.ReviewWeight(st, nowMs)
		}
		chosen := candidates[s.weightedIndex(weights)]
		return &models.SelectionResult{
			Word:        chosen.Word,
			Translation: chosen.Translation,
			IsNew:       false,
			State:       chosen,
		}, nil
	}

	if len(snap.AllEntries) > 0 {
		return nil, ErrNoLearnedWords
	}
	return nil, ErrNoWords
}

// weightedIndex draws an index with probability proportional to its weight.
// Non-positive weights contribute nothing; if every weight is non-positive
// the draw degrades to uniform instead of failing.
func (s *Selector) weightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.rng.Intn(len(weights))
	}

	r := s.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r < 0 {
			return i
		}
	}
	// Floating-point remainder lands on the last positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}
