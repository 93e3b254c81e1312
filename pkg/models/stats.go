package models

// ListStats summarizes learning progress for one word list
type ListStats struct {
	Name         string  `json:"name"`
	LearnedCount int     `json:"learned_count"`
	TotalCount   int     `json:"total_count"`
	LearnedRatio float64 `json:"learned_ratio"` // learned / total
	MasteryRatio float64 `json:"mastery_ratio"` // share of learned words at a 21-day interval or more
}
