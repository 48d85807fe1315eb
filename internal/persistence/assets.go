// Package persistence saves and reloads the three build outputs (IDF table,
// inverted index, metadata store) as gob blobs in the assets directory. The
// blobs are opaque: the engine builds them once and treats a reload as
// equivalent to a fresh build.
package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrepradika/campsite-search/index"
	"github.com/andrepradika/campsite-search/store"
)

const (
	idfFile      = "idf_scores.gob"
	indexFile    = "vsm_index.gob"
	metadataFile = "metadata.gob"
)

// SaveAssets writes the three tables to dir, creating it if needed.
func SaveAssets(dir string, idf index.IDFTable, invIndex *index.InvertedIndex, metadata *store.MetadataStore) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create assets directory %s: %w", dir, err)
	}
	if err := saveGob(filepath.Join(dir, idfFile), idf); err != nil {
		return err
	}
	if err := saveGob(filepath.Join(dir, indexFile), invIndex); err != nil {
		return err
	}
	return saveGob(filepath.Join(dir, metadataFile), metadata)
}

// LoadAssets reloads the three tables from dir. When any blob is missing it
// returns os.ErrNotExist so callers can fall back to building from the
// corpus.
func LoadAssets(dir string) (index.IDFTable, *index.InvertedIndex, *store.MetadataStore, error) {
	idf := index.IDFTable{}
	if err := loadGob(filepath.Join(dir, idfFile), &idf); err != nil {
		return nil, nil, nil, err
	}
	invIndex := index.NewInvertedIndex()
	if err := loadGob(filepath.Join(dir, indexFile), invIndex); err != nil {
		return nil, nil, nil, err
	}
	metadata := store.NewMetadataStore()
	if err := loadGob(filepath.Join(dir, metadataFile), metadata); err != nil {
		return nil, nil, nil, err
	}
	return idf, invIndex, metadata, nil
}

func saveGob(filePath string, object interface{}) error {
	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filePath, closeErr)
		}
	}()

	if err := gob.NewEncoder(file).Encode(object); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	return nil
}

func loadGob(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist // callers treat a missing blob as a fresh start
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filePath, closeErr)
		}
	}()

	if err := gob.NewDecoder(file).Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
