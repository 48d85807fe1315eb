package index

// Posting records that a document contains a term, together with the
// document's TF-IDF weight for that term.
type Posting struct {
	DocID  int
	Weight float64
}

// PostingList is the ordered postings of a single term. Entries are appended
// in corpus scan order during the build; ranking does not depend on the
// order, only on the set.
type PostingList []Posting
