package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how a spreadsheet maps onto a word list
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	OutputDir         string // Directory the .txt word list is written to
	WordColumn        string // Column with the word
	TranslationColumn string // Column with the translation
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration: words in
// column A, translations in column B, header row skipped
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		TranslationColumn: "B",
		SheetName:         "Sheet1",
		StartRow:          2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	OutputPath     string
	TotalProcessed int
	Imported       int
	Skipped        int
}

// ImportWordList converts a two-column spreadsheet into a plain-text word
// list file named after the source file. Rows without both a word and a
// translation are skipped.
func ImportWordList(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSVRows(config.FilePath)
	} else {
		rows, err = readExcelRows(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	var lines []string
	wordIdx := columnToIndex(config.WordColumn)
	translationIdx := columnToIndex(config.TranslationColumn)

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		var word, translation string
		if wordIdx < len(row) {
			word = strings.TrimSpace(row[wordIdx])
		}
		if translationIdx < len(row) {
			translation = strings.TrimSpace(row[translationIdx])
		}
		if word == "" || translation == "" {
			result.Skipped++
			continue
		}

		lines = append(lines, word+"\t"+translation)
		result.Imported++
	}

	base := strings.TrimSuffix(filepath.Base(config.FilePath), filepath.Ext(config.FilePath))
	result.OutputPath = filepath.Join(config.OutputDir, base+".txt")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(result.OutputPath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write word list: %v", err)
	}

	return result, nil
}

// readExcelRows reads all rows of one sheet
func readExcelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

// readCSVRows reads all CSV records, tolerating ragged rows
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnToIndex converts an Excel column letter ("A", "B", ... "AA") to a
// zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return 0
		}
		index = index*26 + int(c-'A') + 1
	}
	if index == 0 {
		return 0
	}
	return index - 1
}
