package history

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vocabgo/pkg/models"
)

// Journal is an append-only log of graded reviews, kept in a local sqlite
// database next to the learner state. It is informational only: the
// scheduling engine never reads it back, and a failed append must never
// block an answer.
type Journal struct {
	db *sqlx.DB
}

// Open connects to the journal database at the given path (":memory:" works
// for tests) and creates the schema if needed
func Open(path string) (*Journal, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one review event
func (j *Journal) Record(ev *models.ReviewEvent) error {
	query := `
		INSERT INTO review_events (
			list_name, word, quality, ease_factor, interval_days, reviewed_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := j.db.Exec(query,
		ev.ListName,
		ev.Word,
		ev.Quality,
		ev.EaseFactor,
		ev.IntervalDays,
		ev.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record review event: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	ev.ID = id

	return nil
}

// Recent returns the latest review events for a list, newest first
func (j *Journal) Recent(listName string, limit int) ([]models.ReviewEvent, error) {
	query := `
		SELECT id, list_name, word, quality, ease_factor, interval_days, reviewed_at
		FROM review_events
		WHERE list_name = ?
		ORDER BY reviewed_at DESC, id DESC
		LIMIT ?
	`
	var events []models.ReviewEvent
	if err := j.db.Select(&events, query, listName, limit); err != nil {
		return nil, fmt.Errorf("failed to query review events: %v", err)
	}
	return events, nil
}

// initializeSchema creates the journal table if it doesn't exist
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS review_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_name TEXT NOT NULL,
			word TEXT NOT NULL,
			quality INTEGER NOT NULL,
			ease_factor REAL NOT NULL,
			interval_days REAL NOT NULL,
			reviewed_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_events table: %v", err)
	}
	return nil
}
