package indexing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/andrepradika/campsite-search/model"
)

// LoadCorpus reads the review corpus from a CSV file with the columns
// doc_id, name, location, rating, text (header row required). Rows with an
// unparsable id or rating are skipped with a warning; an unreadable file is
// an error.
func LoadCorpus(path string) ([]model.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file %s: %w", path, err)
	}
	defer file.Close()

	docs, err := readCorpus(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	return docs, nil
}

func readCorpus(r io.Reader) ([]model.Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []model.Document{}, nil
	}

	docs := make([]model.Document, 0, len(records)-1)
	for i, record := range records[1:] { // skip header
		if len(record) < 5 {
			log.Printf("Warning: corpus row %d has %d columns, want 5, skipping", i+2, len(record))
			continue
		}
		docID, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			log.Printf("Warning: corpus row %d has bad doc_id %q, skipping", i+2, record[0])
			continue
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			log.Printf("Warning: corpus row %d has bad rating %q, skipping", i+2, record[3])
			continue
		}
		docs = append(docs, model.Document{
			DocID:     docID,
			VenueName: strings.TrimSpace(record[1]),
			Location:  strings.TrimSpace(record[2]),
			Rating:    rating,
			Text:      record[4],
		})
	}
	return docs, nil
}
