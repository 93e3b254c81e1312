package models

import "sort"

// WordListSnapshot holds the in-memory state of one word list: every entry from
// the source file plus the learning state of the words seen so far.
type WordListSnapshot struct {
	AllEntries    []VocabEntry
	LearnedStates map[string]*LearningState
	TotalCount    int
}

// NewWordListSnapshot builds a snapshot from parsed entries and cached states.
func NewWordListSnapshot(entries []VocabEntry, states []*LearningState) *WordListSnapshot {
	s := &WordListSnapshot{
		AllEntries:    entries,
		LearnedStates: make(map[string]*LearningState, len(states)),
		TotalCount:    len(entries),
	}
	for _, st := range states {
		s.LearnedStates[st.Word] = st
	}
	return s
}

// Unlearned returns the entries that have no learning state yet, in list order.
func (s *WordListSnapshot) Unlearned() []VocabEntry {
	var out []VocabEntry
	for _, e := range s.AllEntries {
		if _, ok := s.LearnedStates[e.Word]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// Commit adds (or replaces) a learning state in the snapshot.
func (s *WordListSnapshot) Commit(st *LearningState) {
	s.LearnedStates[st.Word] = st
}

// ReviewCandidates returns the learning states of words still present in the
// source list, in list order. Orphaned cache entries are excluded here but are
// still persisted by States.
func (s *WordListSnapshot) ReviewCandidates() []*LearningState {
	var out []*LearningState
	for _, e := range s.AllEntries {
		if st, ok := s.LearnedStates[e.Word]; ok {
			out = append(out, st)
		}
	}
	return out
}

// States returns every learning state ordered by the source list, with orphaned
// entries appended at the end (sorted by word) so persistence never drops them.
func (s *WordListSnapshot) States() []*LearningState {
	out := s.ReviewCandidates()
	seen := make(map[string]bool, len(out))
	for _, st := range out {
		seen[st.Word] = true
	}
	var orphans []*LearningState
	for _, st := range s.LearnedStates {
		if !seen[st.Word] {
			orphans = append(orphans, st)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Word < orphans[j].Word })
	return append(out, orphans...)
}
