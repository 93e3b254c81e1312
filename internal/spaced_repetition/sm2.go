package spaced_repetition

import (
	"errors"
	"time"

	"github.com/example/vocabgo/pkg/models"
)

// ErrInvalidQuality is returned when a recall grade is outside the 0-5 scale
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// MasteryIntervalDays is the interval at which a word counts as mastered
const MasteryIntervalDays = 21.0

// InitialEaseFactor is the EF assigned to a word when it is first introduced
const InitialEaseFactor = 2.5

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Answers at or above this quality count as successful recall
	PassThreshold int
	// Lower bound for the easiness factor
	MinEaseFactor float64
	// Intervals in days for the first and second successful repetition
	InitialIntervals [2]float64
	// Clock, overridable in tests
	Now func() time.Time
}

// NewSM2 creates a new SM2 instance with the standard parameters
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:    3,
		MinEaseFactor:    1.3,
		InitialIntervals: [2]float64{1, 6},
		Now:              time.Now,
	}
}

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// NewState builds the provisional learning state for a word that has just been
// shown for the first time. It is not part of any snapshot until committed.
func (sm *SM2) NewState(entry models.VocabEntry) *models.LearningState {
	return &models.LearningState{
		Word:              entry.Word,
		Translation:       entry.Translation,
		EaseFactor:        InitialEaseFactor,
		RepetitionCount:   0,
		IntervalDays:      sm.InitialIntervals[0],
		LastReviewEpochMs: sm.Now().UnixMilli(),
	}
}

// Answer applies the SM-2 update rule to a learning state after a graded
// recall. A failed recall (quality below the pass threshold) resets the
// repetition count and interval but leaves the ease factor alone; a
// successful one bumps the repetition count, updates the ease factor and
// grows the interval.
func (sm *SM2) Answer(state *models.LearningState, quality int) error {
	if quality < int(QualityBlackout) || quality > int(QualityPerfect) {
		return ErrInvalidQuality
	}

	if quality < sm.PassThreshold {
		// Failed recall resets progress, EF stays where it is
		state.RepetitionCount = 0
		state.IntervalDays = sm.InitialIntervals[0]
	} else {
		state.RepetitionCount++
		state.EaseFactor = sm.UpdateEase(state.EaseFactor, quality)
		if state.RepetitionCount == 1 {
			state.IntervalDays = sm.InitialIntervals[1]
		} else {
			state.IntervalDays = state.IntervalDays * state.EaseFactor
		}
	}

	state.LastReviewEpochMs = sm.Now().UnixMilli()
	return nil
}

// UpdateEase computes the new easiness factor after a recall of the given
// quality, floored at MinEaseFactor
func (sm *SM2) UpdateEase(ef float64, quality int) float64 {
	q := float64(quality)
	newEF := ef + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))
	if newEF < sm.MinEaseFactor {
		newEF = sm.MinEaseFactor
	}
	return newEF
}

// ReviewWeight returns the selection weight of a learned word: elapsed time
// since the last review divided by the current interval. A word reviewed
// moments ago weighs close to zero but is never excluded outright.
func (sm *SM2) ReviewWeight(state *models.LearningState, nowMs int64) float64 {
	if state.IntervalDays <= 0 {
		return 1.0
	}
	elapsedDays := float64(nowMs-state.LastReviewEpochMs) / 86400000.0
	return elapsedDays / state.IntervalDays
}

// IsWordMastered reports whether a word's interval has reached the retention
// threshold used by the progress statistics
func (sm *SM2) IsWordMastered(state *models.LearningState) bool {
	return state.IntervalDays >= MasteryIntervalDays
}
