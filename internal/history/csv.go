package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var csvHeader = []string{"timestamp", "query", "vsm_tokens", "intent", "region"}

const csvTimeLayout = "2006-01-02 15:04:05"

// CSVRecorder appends search entries to a local CSV file, writing the header
// when the file is created. It implements both Recorder and Reader.
type CSVRecorder struct {
	mu   sync.Mutex
	path string
}

// NewCSVRecorder returns a recorder appending to path. The file and its
// directory are created lazily on first write.
func NewCSVRecorder(path string) *CSVRecorder {
	return &CSVRecorder{path: path}
}

// Record appends one entry.
func (r *CSVRecorder) Record(entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	_, statErr := os.Stat(r.path)
	fileExists := statErr == nil

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640) // #nosec G304 -- path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to open history file %s: %w", r.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if !fileExists {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write history header: %w", err)
		}
	}
	row := []string{
		entry.Timestamp.Format(csvTimeLayout),
		entry.Query,
		entry.joinedTokens(),
		entry.Intent,
		entry.Region,
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write history row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// Recent returns the newest n entries, newest first.
func (r *CSVRecorder) Recent(n int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(r.path) // #nosec G304 -- path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open history file %s: %w", r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read history file %s: %w", r.path, err)
	}

	entries := make([]Entry, 0, n)
	for i := len(records) - 1; i >= 1 && len(entries) < n; i-- { // row 0 is the header
		record := records[i]
		if len(record) < 5 {
			continue
		}
		timestamp, _ := time.Parse(csvTimeLayout, record[0])
		entry := Entry{
			Timestamp: timestamp,
			Query:     record[1],
			Intent:    record[3],
			Region:    record[4],
		}
		if record[2] != "" {
			entry.Tokens = strings.Fields(record[2])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
