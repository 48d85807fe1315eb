package store

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/andrepradika/campsite-search/model"
)

// MetadataStore maps a document id to the venue attributes of that review,
// and keeps the distinct venues in corpus scan order for the listing path.
// It is filled once at index build time and read-only afterwards.
type MetadataStore struct {
	Mu     sync.RWMutex
	ByDoc  map[int]model.VenueMeta
	Venues []model.VenueMeta // one entry per distinct venue name, scan order
}

// NewMetadataStore returns an empty store ready for building.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{ByDoc: make(map[int]model.VenueMeta)}
}

// Get looks up the venue metadata of a document. The second return value is
// false when the document id is unknown; callers treat that as a skip, not
// an error.
func (ms *MetadataStore) Get(docID int) (model.VenueMeta, bool) {
	meta, ok := ms.ByDoc[docID]
	return meta, ok
}

// DistinctVenues returns one VenueMeta per venue name, in the order the
// venues first appeared in the corpus. The returned slice is a copy.
func (ms *MetadataStore) DistinctVenues() []model.VenueMeta {
	venues := make([]model.VenueMeta, len(ms.Venues))
	copy(venues, ms.Venues)
	return venues
}

// Len reports the number of documents with metadata.
func (ms *MetadataStore) Len() int {
	return len(ms.ByDoc)
}

// gobMetadataStoreData is a helper struct for gob encoding/decoding.
// It excludes the mutex.
type gobMetadataStoreData struct {
	ByDoc  map[int]model.VenueMeta
	Venues []model.VenueMeta
}

// GobEncode implements the gob.GobEncoder interface for MetadataStore.
func (ms *MetadataStore) GobEncode() ([]byte, error) {
	ms.Mu.RLock()
	defer ms.Mu.RUnlock()

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(gobMetadataStoreData{ByDoc: ms.ByDoc, Venues: ms.Venues}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for MetadataStore.
func (ms *MetadataStore) GobDecode(data []byte) error {
	decodedData := gobMetadataStoreData{}

	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	ms.Mu.Lock()
	defer ms.Mu.Unlock()

	ms.ByDoc = decodedData.ByDoc
	ms.Venues = decodedData.Venues
	if ms.ByDoc == nil {
		ms.ByDoc = make(map[int]model.VenueMeta)
	}
	return nil
}
