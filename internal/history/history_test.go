package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabgo/pkg/models"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	events := []*models.ReviewEvent{
		{ListName: "food", Word: "apple", Quality: 5, EaseFactor: 2.6, IntervalDays: 6, ReviewedAt: 1000},
		{ListName: "food", Word: "pear", Quality: 2, EaseFactor: 2.3, IntervalDays: 1, ReviewedAt: 2000},
		{ListName: "animals", Word: "cat", Quality: 4, EaseFactor: 2.5, IntervalDays: 6, ReviewedAt: 3000},
	}
	for _, ev := range events {
		require.NoError(t, j.Record(ev))
		assert.NotZero(t, ev.ID)
	}

	recent, err := j.Recent("food", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "pear", recent[0].Word, "newest first")
	assert.Equal(t, "apple", recent[1].Word)
	assert.InDelta(t, 2.3, recent[0].EaseFactor, 1e-9)
}

func TestRecent_Limit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(&models.ReviewEvent{
			ListName: "food", Word: "apple", Quality: 5,
			EaseFactor: 2.5, IntervalDays: 1, ReviewedAt: int64(i),
		}))
	}

	recent, err := j.Recent("food", 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestRecent_EmptyList(t *testing.T) {
	j := openTestJournal(t)
	recent, err := j.Recent("nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
