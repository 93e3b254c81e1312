package quota

import (
	"time"

	"github.com/example/vocabgo/pkg/models"
)

// DateFormat is the calendar-day key used for quota rollover
const DateFormat = "2006-01-02"

// Tracker gates the introduction of new words against a daily limit. It holds
// an explicit DailyQuota value; persisting the value after a change is the
// caller's responsibility.
type Tracker struct {
	quota models.DailyQuota
}

// New creates a tracker seeded from a persisted quota value
func New(q models.DailyQuota) *Tracker {
	return &Tracker{quota: q}
}

// Today formats a time as a quota date key
func Today(now time.Time) string {
	return now.Format(DateFormat)
}

// Rollover resets the counter when the stored date is not today. It returns
// true when a reset happened, so the caller knows to persist the new value.
func (t *Tracker) Rollover(today string) bool {
	if t.quota.Date == today {
		return false
	}
	t.quota.Date = today
	t.quota.Count = 0
	return true
}

// AllowNewItem reports whether another new word may be introduced today.
// The day boundary is checked first, so a stale counter from a previous day
// never blocks learning.
func (t *Tracker) AllowNewItem(today string) bool {
	t.Rollover(today)
	return t.quota.Count < t.quota.Limit
}

// RecordNewItemIntroduced bumps the counter after a new word has been
// confirmed. Call it at most once per confirmed introduction, not on
// provisional display. The returned value is what the caller should persist.
func (t *Tracker) RecordNewItemIntroduced() models.DailyQuota {
	t.quota.Count++
	return t.quota
}

// Snapshot returns the current quota value
func (t *Tracker) Snapshot() models.DailyQuota {
	return t.quota
}
