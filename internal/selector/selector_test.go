package selector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabgo/internal/quota"
	"github.com/example/vocabgo/internal/spaced_repetition"
	"github.com/example/vocabgo/pkg/models"
)

var testNow = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

func testSelector(seed int64) *Selector {
	sm := spaced_repetition.NewSM2()
	sm.Now = func() time.Time { return testNow }
	s := New(sm, rand.New(rand.NewSource(seed)))
	s.Now = sm.Now
	return s
}

func learnedState(word string, intervalDays float64, lastReview time.Time) *models.LearningState {
	return &models.LearningState{
		Word:              word,
		Translation:       word + "-tr",
		EaseFactor:        2.5,
		RepetitionCount:   1,
		IntervalDays:      intervalDays,
		LastReviewEpochMs: lastReview.UnixMilli(),
	}
}

func TestNext_NewWordWhileQuotaAllows(t *testing.T) {
	snap := models.NewWordListSnapshot([]models.VocabEntry{
		{Word: "a", Translation: "1"},
		{Word: "b", Translation: "2"},
		{Word: "c", Translation: "3"},
	}, []*models.LearningState{learnedState("a", 6, testNow.Add(-24*time.Hour))})
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Limit: 10})

	sel, err := testSelector(1).Next(snap, tr, false)
	require.NoError(t, err)
	assert.True(t, sel.IsNew)
	assert.Contains(t, []string{"b", "c"}, sel.Word)
	assert.Equal(t, 2.5, sel.State.EaseFactor)
	assert.Equal(t, 0, sel.State.RepetitionCount)
	assert.Equal(t, 1.0, sel.State.IntervalDays)
	assert.Equal(t, testNow.UnixMilli(), sel.State.LastReviewEpochMs)

	// Provisional: the snapshot must not know about the word yet
	assert.NotContains(t, snap.LearnedStates, sel.Word)
}

func TestNext_ReviewWhenQuotaExhausted(t *testing.T) {
	st := learnedState("a", 6, testNow.Add(-48*time.Hour))
	snap := models.NewWordListSnapshot([]models.VocabEntry{
		{Word: "a", Translation: "1"},
		{Word: "b", Translation: "2"},
	}, []*models.LearningState{st})
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Count: 5, Limit: 5})

	sel, err := testSelector(1).Next(snap, tr, false)
	require.NoError(t, err)
	assert.False(t, sel.IsNew)
	assert.Same(t, st, sel.State, "review selection points at the live state")
}

func TestNext_ReviewOnlySkipsNewWords(t *testing.T) {
	st := learnedState("a", 6, testNow.Add(-time.Hour))
	snap := models.NewWordListSnapshot([]models.VocabEntry{
		{Word: "a", Translation: "1"},
		{Word: "b", Translation: "2"},
	}, []*models.LearningState{st})
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Limit: 10})

	sel, err := testSelector(1).Next(snap, tr, true)
	require.NoError(t, err)
	assert.False(t, sel.IsNew)
	assert.Equal(t, "a", sel.Word)
}

func TestNext_NoLearnedWords(t *testing.T) {
	snap := models.NewWordListSnapshot([]models.VocabEntry{
		{Word: "a", Translation: "1"},
	}, nil)
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Limit: 0})

	_, err := testSelector(1).Next(snap, tr, false)
	assert.ErrorIs(t, err, ErrNoLearnedWords)
}

func TestNext_NoWords(t *testing.T) {
	snap := models.NewWordListSnapshot(nil, nil)
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Limit: 10})

	_, err := testSelector(1).Next(snap, tr, false)
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestNext_OrphanedStatesIgnored(t *testing.T) {
	// A cached state for a word that left the list must not be selected
	snap := models.NewWordListSnapshot([]models.VocabEntry{
		{Word: "a", Translation: "1"},
	}, []*models.LearningState{learnedState("gone", 6, testNow.Add(-time.Hour))})
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Limit: 0})

	_, err := testSelector(1).Next(snap, tr, false)
	assert.ErrorIs(t, err, ErrNoLearnedWords)
}

func TestNext_WeightedDrawFrequencies(t *testing.T) {
	// Same elapsed time, intervals 1/2/4 days: weights 4:2:1
	last := testNow.Add(-4 * 24 * time.Hour)
	snap := models.NewWordListSnapshot([]models.VocabEntry{
		{Word: "a", Translation: "1"},
		{Word: "b", Translation: "2"},
		{Word: "c", Translation: "3"},
	}, []*models.LearningState{
		learnedState("a", 1, last),
		learnedState("b", 2, last),
		learnedState("c", 4, last),
	})
	tr := quota.New(models.DailyQuota{Date: quota.Today(testNow), Limit: 0})
	s := testSelector(42)

	const draws = 20000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		sel, err := s.Next(snap, tr, false)
		require.NoError(t, err)
		counts[sel.Word]++
	}

	assert.InDelta(t, 4.0/7.0, float64(counts["a"])/draws, 0.02)
	assert.InDelta(t, 2.0/7.0, float64(counts["b"])/draws, 0.02)
	assert.InDelta(t, 1.0/7.0, float64(counts["c"])/draws, 0.02)
}

func TestWeightedIndex_AllZeroFallsBackToUniform(t *testing.T) {
	s := testSelector(7)
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		counts[s.weightedIndex([]float64{0, 0, 0})]++
	}
	for i, c := range counts {
		assert.Greater(t, c, 0, "index %d never drawn", i)
	}
}
