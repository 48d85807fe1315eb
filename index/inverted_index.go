package index

import (
	"bytes"
	"encoding/gob"
	"sync"
)

// IDFTable maps a term to its inverse document frequency, log10(N/df).
// Terms that never occur in the corpus have no entry.
type IDFTable map[string]float64

// InvertedIndex maps a term to the postings of every document containing it.
// It is built once, offline, and is read-only for the rest of the process
// lifetime, so concurrent readers are safe without taking the lock. The lock
// exists for the encode/decode paths.
type InvertedIndex struct {
	Mu    sync.RWMutex
	Terms map[string]PostingList
}

// NewInvertedIndex returns an empty index ready for building.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{Terms: make(map[string]PostingList)}
}

// Postings returns the posting list for a term, or nil when the term is not
// indexed.
func (ii *InvertedIndex) Postings(term string) PostingList {
	return ii.Terms[term]
}

// gobInvertedIndexData is a helper struct for gob encoding/decoding.
// It excludes the mutex.
type gobInvertedIndexData struct {
	Terms map[string]PostingList
}

// GobEncode implements the gob.GobEncoder interface for InvertedIndex.
func (ii *InvertedIndex) GobEncode() ([]byte, error) {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(gobInvertedIndexData{Terms: ii.Terms}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for InvertedIndex.
func (ii *InvertedIndex) GobDecode(data []byte) error {
	decodedData := gobInvertedIndexData{}

	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	ii.Mu.Lock()
	defer ii.Mu.Unlock()

	ii.Terms = decodedData.Terms
	if ii.Terms == nil {
		ii.Terms = make(map[string]PostingList)
	}
	return nil
}
