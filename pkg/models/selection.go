package models

// SelectionResult is what the selector hands to the UI for one review round.
// For a new word State is a provisional LearningState that is not part of the
// snapshot yet; the caller must pass the result back into Confirm to commit it.
// For a review word State points at the live entry in the snapshot.
type SelectionResult struct {
	Word        string
	Translation string
	IsNew       bool
	State       *LearningState
}
