package storage

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/example/vocabgo/pkg/models"
)

// Settings keys for the daily new-word quota
const (
	KeyDailyNewLimit = "DAILY_NEW_LIMIT"
	KeyTodayCount    = "TODAY_COUNT"
	KeyTodayDate     = "TODAY_DATE"
)

// DefaultDailyNewLimit is used when the settings file is absent or has no
// usable limit
const DefaultDailyNewLimit = 50

// Settings is the key/value settings artifact, read and written as dotenv
// lines. Keys other than the quota keys are preserved across rewrites.
type Settings struct {
	path   string
	values map[string]string
}

// LoadSettings reads the settings file, returning defaults when the file
// does not exist yet
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{path: path, values: map[string]string{}}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %v", err)
	}
	s.values = values
	return s, nil
}

// Save writes every known key back to the settings file
func (s *Settings) Save() error {
	if err := godotenv.Write(s.values, s.path); err != nil {
		return fmt.Errorf("failed to write settings file: %v", err)
	}
	return nil
}

// Quota assembles the persisted daily quota. Missing or malformed numbers
// fall back to defaults rather than failing startup.
func (s *Settings) Quota() models.DailyQuota {
	return models.DailyQuota{
		Date:  s.values[KeyTodayDate],
		Count: s.intValue(KeyTodayCount, 0),
		Limit: s.intValue(KeyDailyNewLimit, DefaultDailyNewLimit),
	}
}

// SetQuota stores a quota value into the settings map; call Save to persist
func (s *Settings) SetQuota(q models.DailyQuota) {
	s.values[KeyTodayDate] = q.Date
	s.values[KeyTodayCount] = strconv.Itoa(q.Count)
	s.values[KeyDailyNewLimit] = strconv.Itoa(q.Limit)
}

func (s *Settings) intValue(key string, def int) int {
	raw, ok := s.values[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
