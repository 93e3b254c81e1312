package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/vocabgo/pkg/models"
)

// Store manages the on-disk learner state: word lists and their progress
// caches under <dataDir>/assets. A single process is assumed to own the
// files; concurrent writers from other processes are not guarded against.
type Store struct {
	assetsDir string
}

// ListInfo identifies one discoverable word list
type ListInfo struct {
	Name string
	Path string
}

// NewStore creates a store rooted at dataDir, creating the assets directory
// if it does not exist
func NewStore(dataDir string) (*Store, error) {
	assetsDir := filepath.Join(dataDir, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %v", err)
	}
	return &Store{assetsDir: assetsDir}, nil
}

// AssetsDir returns the directory word lists live in
func (s *Store) AssetsDir() string {
	return s.assetsDir
}

// Lists discovers the available word lists: every .txt file in the assets
// directory whose name does not start with an underscore (those are cache
// artifacts).
func (s *Store) Lists() ([]ListInfo, error) {
	entries, err := os.ReadDir(s.assetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets directory: %v", err)
	}

	var lists []ListInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		lists = append(lists, ListInfo{
			Name: strings.TrimSuffix(name, ".txt"),
			Path: filepath.Join(s.assetsDir, name),
		})
	}
	return lists, nil
}

// CachePath returns the progress cache artifact for a word list:
// assets/words.txt -> assets/_words.json
func (s *Store) CachePath(listPath string) string {
	base := strings.TrimSuffix(filepath.Base(listPath), filepath.Ext(listPath))
	return filepath.Join(filepath.Dir(listPath), "_"+base+".json")
}

// Load reads the learning states cached for a word list together with the
// authoritative entry count from the raw list file. An absent or corrupt
// cache yields empty states, never an error: the learner simply starts
// fresh for that list.
func (s *Store) Load(listPath string) ([]*models.LearningState, int, error) {
	entries, err := ReadWordList(listPath)
	if err != nil {
		return nil, 0, err
	}
	return s.LoadStates(listPath), len(entries), nil
}

// LoadStates reads the cache artifact for a list, falling back to empty on
// any absence or corruption
func (s *Store) LoadStates(listPath string) []*models.LearningState {
	raw, err := os.ReadFile(s.CachePath(listPath))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read cache for %s, starting fresh: %v", listPath, err)
		}
		return nil
	}

	states, err := decodeCache(raw)
	if err != nil {
		log.Printf("Corrupt cache for %s, starting fresh: %v", listPath, err)
		return nil
	}
	return states
}

// Save fully rewrites the cache artifact for a list. The content is written
// to a temporary file in the same directory and renamed over the old
// artifact, so an interrupted save never leaves a truncated cache behind.
func (s *Store) Save(listPath string, states []*models.LearningState) error {
	data, err := encodeCache(states)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %v", err)
	}

	cachePath := s.CachePath(listPath)
	tmp, err := os.CreateTemp(filepath.Dir(cachePath), ".cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache file: %v", err)
	}
	if err := os.Rename(tmpName, cachePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %v", err)
	}
	return nil
}

// Reset deletes the cache artifact for a list and reports whether one
// existed. The word list itself is never touched.
func (s *Store) Reset(listPath string) (bool, error) {
	err := os.Remove(s.CachePath(listPath))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete cache file: %v", err)
	}
	return true, nil
}
