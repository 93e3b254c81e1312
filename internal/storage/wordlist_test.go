package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabgo/pkg/models"
)

func TestReadWordList(t *testing.T) {
	content := "apple\tяблоко\n" +
		"pear груша сочная\n" + // whitespace form: split on first run only
		"\n" +
		"   \n" +
		"loneword\n" + // one field, skipped
		"tab\tsep\tthree\n" + // three tab fields, skipped
		"grape\t виноград \n"

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	entries, err := ReadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, []models.VocabEntry{
		{Word: "apple", Translation: "яблоко"},
		{Word: "pear", Translation: "груша сочная"},
		{Word: "grape", Translation: "виноград"},
	}, entries)
}

func TestReadWordList_MissingFile(t *testing.T) {
	_, err := ReadWordList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		line        string
		word, trans string
		ok          bool
	}{
		{"cat кошка", "cat", "кошка", true},
		{"cat\tкошка", "cat", "кошка", true},
		{"look up посмотреть", "look", "up посмотреть", true},
		{"look up\tпосмотреть", "look up", "посмотреть", true},
		{"single", "", "", false},
		{"a\tb\tc", "", "", false},
		{"a\t", "", "", false},
	}
	for _, tt := range tests {
		word, trans, ok := splitEntry(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		if tt.ok {
			assert.Equal(t, tt.word, word, "line %q", tt.line)
			assert.Equal(t, tt.trans, trans, "line %q", tt.line)
		}
	}
}
