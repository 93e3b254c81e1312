package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/example/vocabgo/internal/engine"
	"github.com/example/vocabgo/internal/excel"
	"github.com/example/vocabgo/internal/history"
	"github.com/example/vocabgo/internal/storage"
	"github.com/example/vocabgo/internal/ui"
)

func main() {
	dataDir := flag.String("data", ".", "directory holding assets/, settings.txt and history.db")
	importFile := flag.String("import", "", "convert an .xlsx or .csv file into a word list and exit")
	flag.Parse()

	store, err := storage.NewStore(*dataDir)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	if *importFile != "" {
		runImport(store, *importFile)
		return
	}

	settings, err := storage.LoadSettings(filepath.Join(*dataDir, "settings.txt"))
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// The review journal is informational; a broken database must not stop
	// a learning session
	journal, err := history.Open(filepath.Join(*dataDir, "history.db"))
	if err != nil {
		log.Printf("Review journal disabled: %v", err)
		journal = nil
	} else {
		defer journal.Close()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	e := engine.New(store, settings, journal, rng)

	// A final save on interrupt so a confirmed answer is never lost
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, saving progress", sig)
		if err := e.SaveAll(); err != nil {
			log.Printf("Final save failed: %v", err)
		}
		os.Exit(1)
	}()

	if err := ui.New(e, os.Stdin, os.Stdout).Run(); err != nil && !errors.Is(err, io.EOF) {
		log.Fatalf("Session ended with error: %v", err)
	}
	log.Println("Progress saved.")
}

// runImport converts a spreadsheet into a plain-text word list inside the
// assets directory
func runImport(store *storage.Store, path string) {
	config := excel.DefaultImportConfig()
	config.FilePath = path
	config.OutputDir = store.AssetsDir()

	result, err := excel.ImportWordList(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported %d of %d rows into %s (%d skipped)",
		result.Imported, result.TotalProcessed, result.OutputPath, result.Skipped)
}
