package models

// DailyQuota tracks how many new words have been introduced today against the
// configured daily limit. Count is not capped at Limit: the limit gates the
// introduction of new words, not the counter itself.
type DailyQuota struct {
	Date  string // calendar date the counter belongs to, "2006-01-02"
	Count int
	Limit int
}
