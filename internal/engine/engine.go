package engine

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/example/vocabgo/internal/history"
	"github.com/example/vocabgo/internal/quota"
	"github.com/example/vocabgo/internal/selector"
	"github.com/example/vocabgo/internal/spaced_repetition"
	"github.com/example/vocabgo/internal/storage"
	"github.com/example/vocabgo/pkg/models"
)

var (
	// ErrNoWordLists means no word list files were found at all
	ErrNoWordLists = errors.New("no word lists found")
	// ErrListNotFound means the requested list name does not exist
	ErrListNotFound = errors.New("word list not found")
	// ErrNoListSelected means an operation needs a selected list first
	ErrNoListSelected = errors.New("no word list selected")
)

// Engine drives one learning session: it owns the snapshot of the current
// word list, the daily quota and the persistence ordering. The interactive
// loop drives it one call at a time; a mutex serializes those calls against
// the interrupt handler's final save, which runs on its own goroutine.
type Engine struct {
	mu sync.Mutex

	store    *storage.Store
	settings *storage.Settings
	tracker  *quota.Tracker
	sm2      *spaced_repetition.SM2
	selector *selector.Selector
	journal  *history.Journal // optional, nil disables the review journal

	current    *storage.ListInfo
	snapshot   *models.WordListSnapshot
	reviewOnly bool

	// Clock, overridable in tests
	Now func() time.Time
}

// New wires an engine from its collaborators. The quota counter is rolled
// over immediately so a stale date from the settings file never blocks
// today's learning.
func New(store *storage.Store, settings *storage.Settings, journal *history.Journal, rng *rand.Rand) *Engine {
	return newWithClock(store, settings, journal, rng, time.Now)
}

func newWithClock(store *storage.Store, settings *storage.Settings, journal *history.Journal, rng *rand.Rand, now func() time.Time) *Engine {
	sm := spaced_repetition.NewSM2()
	sm.Now = now
	sel := selector.New(sm, rng)
	sel.Now = now
	e := &Engine{
		store:    store,
		settings: settings,
		tracker:  quota.New(settings.Quota()),
		sm2:      sm,
		selector: sel,
		journal:  journal,
		Now:      now,
	}
	if e.tracker.Rollover(quota.Today(e.Now())) {
		e.persistQuota()
	}
	return e
}

// Lists returns the discoverable word lists, or ErrNoWordLists when the
// assets directory has none
func (e *Engine) Lists() ([]storage.ListInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lists()
}

func (e *Engine) lists() ([]storage.ListInfo, error) {
	lists, err := e.store.Lists()
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return nil, ErrNoWordLists
	}
	return lists, nil
}

// SelectList makes the named list the active one and loads its snapshot
func (e *Engine) SelectList(name string) (*models.WordListSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectList(name)
}

func (e *Engine) selectList(name string) (*models.WordListSnapshot, error) {
	lists, err := e.lists()
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].Name != name {
			continue
		}
		entries, err := storage.ReadWordList(lists[i].Path)
		if err != nil {
			return nil, err
		}
		states := e.store.LoadStates(lists[i].Path)
		e.current = &lists[i]
		e.snapshot = models.NewWordListSnapshot(entries, states)
		return e.snapshot, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrListNotFound, name)
}

// Next picks the next word to present. The day boundary is checked first;
// when the calendar day changed since the last persisted quota the counter
// resets and the settings file is rewritten before selection.
func (e *Engine) Next() (*models.SelectionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil, ErrNoListSelected
	}
	if e.tracker.Rollover(quota.Today(e.Now())) {
		e.persistQuota()
	}
	return e.selector.Next(e.snapshot, e.tracker, e.reviewOnly)
}

// Confirm grades a selection and makes it durable: a provisional new word is
// committed into the snapshot and counted against the quota, the SM-2 update
// is applied, and the full state is flushed to disk. Nothing is mutated when
// the quality is out of range.
func (e *Engine) Confirm(sel *models.SelectionResult, quality int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoListSelected
	}
	if quality < int(spaced_repetition.QualityBlackout) || quality > int(spaced_repetition.QualityPerfect) {
		return spaced_repetition.ErrInvalidQuality
	}

	if sel.IsNew {
		if _, already := e.snapshot.LearnedStates[sel.Word]; !already {
			e.snapshot.Commit(sel.State)
			e.persistQuotaValue(e.tracker.RecordNewItemIntroduced())
		}
	}

	if err := e.sm2.Answer(sel.State, quality); err != nil {
		return err
	}
	if err := e.store.Save(e.current.Path, e.snapshot.States()); err != nil {
		return err
	}

	if e.journal != nil {
		ev := &models.ReviewEvent{
			ListName:     e.current.Name,
			Word:         sel.Word,
			Quality:      quality,
			EaseFactor:   sel.State.EaseFactor,
			IntervalDays: sel.State.IntervalDays,
			ReviewedAt:   sel.State.LastReviewEpochMs,
		}
		if err := e.journal.Record(ev); err != nil {
			log.Printf("Failed to record review event: %v", err)
		}
	}
	return nil
}

// ResetList deletes the persisted progress for the named list and reports
// whether a cache existed. When the active list is reset its snapshot is
// reloaded empty.
func (e *Engine) ResetList(name string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lists, err := e.lists()
	if err != nil {
		return false, err
	}
	for i := range lists {
		if lists[i].Name != name {
			continue
		}
		existed, err := e.store.Reset(lists[i].Path)
		if err != nil {
			return false, err
		}
		if e.current != nil && e.current.Name == name {
			if _, err := e.selectList(name); err != nil {
				return existed, err
			}
		}
		return existed, nil
	}
	return false, fmt.Errorf("%w: %s", ErrListNotFound, name)
}

// Stats summarizes every discoverable list: learned/total counts, the share
// of the list learned, and the share of learned words at the mastery
// interval. It reads the persisted caches; callers wanting the active list's
// unsaved progress included flush with SaveAll first.
func (e *Engine) Stats() ([]models.ListStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lists, err := e.lists()
	if err != nil {
		return nil, err
	}

	var out []models.ListStats
	for _, l := range lists {
		states, total, err := e.store.Load(l.Path)
		if err != nil {
			log.Printf("Skipping list %s in stats: %v", l.Name, err)
			continue
		}
		if total == 0 {
			continue
		}

		st := models.ListStats{
			Name:         l.Name,
			LearnedCount: len(states),
			TotalCount:   total,
			LearnedRatio: float64(len(states)) / float64(total),
		}
		if len(states) > 0 {
			mastered := 0
			for _, s := range states {
				if e.sm2.IsWordMastered(s) {
					mastered++
				}
			}
			st.MasteryRatio = float64(mastered) / float64(len(states))
		}
		out = append(out, st)
	}
	return out, nil
}

// ReviewOnly reports whether review-only mode is on
func (e *Engine) ReviewOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reviewOnly
}

// SetReviewOnly toggles review-only mode and flushes state, so an interrupt
// right after a toggle loses nothing
func (e *Engine) SetReviewOnly(on bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reviewOnly = on
	return e.saveAll()
}

// SaveAll flushes the active snapshot and the settings file. Safe to call
// from the interrupt handler while the interactive loop is running.
func (e *Engine) SaveAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveAll()
}

func (e *Engine) saveAll() error {
	if e.current != nil {
		if err := e.store.Save(e.current.Path, e.snapshot.States()); err != nil {
			return err
		}
	}
	e.settings.SetQuota(e.tracker.Snapshot())
	return e.settings.Save()
}

// Current returns the active list, or nil when none is selected
func (e *Engine) Current() *storage.ListInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Snapshot returns the active list snapshot, or nil when none is selected
func (e *Engine) Snapshot() *models.WordListSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// Quota returns the current daily quota value
func (e *Engine) Quota() models.DailyQuota {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Snapshot()
}

// RecentHistory returns the latest journal entries for the active list
func (e *Engine) RecentHistory(limit int) ([]models.ReviewEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil, ErrNoListSelected
	}
	if e.journal == nil {
		return nil, nil
	}
	return e.journal.Recent(e.current.Name, limit)
}

func (e *Engine) persistQuota() {
	e.persistQuotaValue(e.tracker.Snapshot())
}

// persistQuotaValue writes an updated quota to the settings file. Failure is
// logged, not fatal: the in-memory counter stays authoritative for the
// session.
func (e *Engine) persistQuotaValue(q models.DailyQuota) {
	e.settings.SetQuota(q)
	if err := e.settings.Save(); err != nil {
		log.Printf("Failed to persist quota: %v", err)
	}
}
