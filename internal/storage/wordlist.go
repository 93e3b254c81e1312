package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/example/vocabgo/pkg/models"
)

// ReadWordList parses a plain-text word list: one entry per line, word and
// translation separated by a tab if the line has one, otherwise by the first
// run of whitespace. Lines that do not split into exactly two fields are
// skipped.
func ReadWordList(path string) ([]models.VocabEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %v", err)
	}
	defer f.Close()

	var entries []models.VocabEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, translation, ok := splitEntry(line)
		if !ok {
			continue
		}
		entries = append(entries, models.VocabEntry{Word: word, Translation: translation})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %v", err)
	}
	return entries, nil
}

// splitEntry splits a line into word and translation. Tab wins over generic
// whitespace; a tab-separated line must have exactly two fields, while the
// whitespace form splits on the first run only so translations may contain
// spaces.
func splitEntry(line string) (string, string, bool) {
	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			return "", "", false
		}
		word := strings.TrimSpace(parts[0])
		translation := strings.TrimSpace(parts[1])
		if word == "" || translation == "" {
			return "", "", false
		}
		return word, translation, true
	}

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	word := line[:i]
	translation := strings.TrimSpace(line[i:])
	if translation == "" {
		return "", "", false
	}
	return word, translation, true
}
