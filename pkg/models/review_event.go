package models

// ReviewEvent is one row of the review journal: a single graded recall
type ReviewEvent struct {
	ID           int64   `db:"id"`
	ListName     string  `db:"list_name"`
	Word         string  `db:"word"`
	Quality      int     `db:"quality"`
	EaseFactor   float64 `db:"ease_factor"`
	IntervalDays float64 `db:"interval_days"`
	ReviewedAt   int64   `db:"reviewed_at"` // milliseconds since epoch
}
