package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabgo/pkg/models"
)

func fixedSM2(t *testing.T, at time.Time) *SM2 {
	t.Helper()
	sm := NewSM2()
	sm.Now = func() time.Time { return at }
	return sm
}

func TestUpdateEase_NeverBelowFloor(t *testing.T) {
	sm := NewSM2()
	for _, ef := range []float64{1.3, 1.5, 2.0, 2.5, 3.0} {
		for q := 0; q <= 5; q++ {
			got := sm.UpdateEase(ef, q)
			assert.GreaterOrEqual(t, got, 1.3, "ef=%v q=%d", ef, q)
		}
	}
}

func TestUpdateEase_KnownValues(t *testing.T) {
	sm := NewSM2()
	assert.InDelta(t, 2.6, sm.UpdateEase(2.5, 5), 1e-9)
	assert.InDelta(t, 2.5, sm.UpdateEase(2.5, 4), 1e-9)
	assert.InDelta(t, 2.36, sm.UpdateEase(2.5, 3), 1e-9)
}

func TestAnswer_FailedRecallResetsProgress(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sm := fixedSM2(t, now)

	for q := 0; q <= 2; q++ {
		state := &models.LearningState{
			Word:            "apple",
			Translation:     "яблоко",
			EaseFactor:      2.2,
			RepetitionCount: 7,
			IntervalDays:    42.5,
		}
		require.NoError(t, sm.Answer(state, q))
		assert.Equal(t, 0, state.RepetitionCount, "q=%d", q)
		assert.Equal(t, 1.0, state.IntervalDays, "q=%d", q)
		assert.Equal(t, 2.2, state.EaseFactor, "failed recall must not touch EF")
		assert.Equal(t, now.UnixMilli(), state.LastReviewEpochMs)
	}
}

func TestAnswer_SuccessChain(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sm := fixedSM2(t, now)

	state := sm.NewState(models.VocabEntry{Word: "apple", Translation: "яблоко"})
	assert.Equal(t, 2.5, state.EaseFactor)
	assert.Equal(t, 1.0, state.IntervalDays)

	require.NoError(t, sm.Answer(state, 5))
	assert.InDelta(t, 2.6, state.EaseFactor, 1e-9)
	assert.Equal(t, 1, state.RepetitionCount)
	assert.Equal(t, 6.0, state.IntervalDays)

	require.NoError(t, sm.Answer(state, 5))
	assert.InDelta(t, 2.7, state.EaseFactor, 1e-9)
	assert.Equal(t, 2, state.RepetitionCount)
	assert.InDelta(t, 16.2, state.IntervalDays, 1e-9)
}

func TestAnswer_IntervalGrowsMonotonically(t *testing.T) {
	sm := fixedSM2(t, time.Now())

	state := sm.NewState(models.VocabEntry{Word: "w", Translation: "t"})
	prev := state.IntervalDays
	for i := 0; i < 10; i++ {
		require.NoError(t, sm.Answer(state, 3))
		assert.GreaterOrEqual(t, state.IntervalDays, prev)
		assert.GreaterOrEqual(t, state.EaseFactor, sm.MinEaseFactor)
		prev = state.IntervalDays
	}
}

func TestAnswer_InvalidQuality(t *testing.T) {
	sm := NewSM2()
	state := sm.NewState(models.VocabEntry{Word: "w", Translation: "t"})
	before := *state

	assert.ErrorIs(t, sm.Answer(state, -1), ErrInvalidQuality)
	assert.ErrorIs(t, sm.Answer(state, 6), ErrInvalidQuality)
	assert.Equal(t, before, *state, "rejected answer must not mutate state")
}

func TestReviewWeight(t *testing.T) {
	sm := NewSM2()
	nowMs := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC).UnixMilli()

	t.Run("elapsed over interval", func(t *testing.T) {
		state := &models.LearningState{
			IntervalDays:      1,
			LastReviewEpochMs: nowMs - 2*86400000,
		}
		assert.InDelta(t, 2.0, sm.ReviewWeight(state, nowMs), 1e-9)
	})

	t.Run("non-positive interval falls back to 1", func(t *testing.T) {
		state := &models.LearningState{IntervalDays: 0, LastReviewEpochMs: nowMs}
		assert.Equal(t, 1.0, sm.ReviewWeight(state, nowMs))
	})

	t.Run("just reviewed weighs near zero", func(t *testing.T) {
		state := &models.LearningState{IntervalDays: 6, LastReviewEpochMs: nowMs}
		assert.Equal(t, 0.0, sm.ReviewWeight(state, nowMs))
	})
}

func TestIsWordMastered(t *testing.T) {
	sm := NewSM2()
	assert.False(t, sm.IsWordMastered(&models.LearningState{IntervalDays: 20.9}))
	assert.True(t, sm.IsWordMastered(&models.LearningState{IntervalDays: 21}))
	assert.True(t, sm.IsWordMastered(&models.LearningState{IntervalDays: 100}))
}
