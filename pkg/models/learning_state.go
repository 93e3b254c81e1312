package models

// LearningState tracks progress on a single word using the SM-2 algorithm
type LearningState struct {
	Word             string  `json:"word"`
	Translation      string  `json:"translation"`       // frozen copy from the word list at first learn
	EaseFactor       float64 `json:"ease_factor"`       // SM-2 EF parameter, never below 1.3
	RepetitionCount  int     `json:"repetition_count"`  // consecutive successful recalls
	IntervalDays     float64 `json:"interval_days"`     // days until the word is next due
	LastReviewEpochMs int64  `json:"last_review_epoch_ms"`
}
