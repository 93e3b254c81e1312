package models

// VocabEntry represents a single word from a word list
type VocabEntry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}
