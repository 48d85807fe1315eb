package model

// Document is a single review in the corpus. Documents are produced once at
// corpus-load time and never mutated afterwards.
type Document struct {
	DocID     int      `json:"doc_id"`
	VenueName string   `json:"venue_name"`
	Location  string   `json:"location"`
	Rating    float64  `json:"rating"`
	Text      string   `json:"text"`
	Tokens    []string `json:"-"` // normalized terms, filled during indexing
}

// VenueMeta holds the per-document venue attributes kept in the metadata
// store. AvgRating is the mean rating over every review of the same venue,
// computed once at index build time.
type VenueMeta struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Rating    float64 `json:"rating"`
	AvgRating float64 `json:"avg_rating"`
}
