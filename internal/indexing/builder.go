// Package indexing builds the three immutable tables the engine runs on: the
// IDF table, the inverted index, and the metadata store. The build is a
// batch, one-shot pass over the corpus; nothing is updated incrementally.
package indexing

import (
	"math"

	"github.com/andrepradika/campsite-search/index"
	"github.com/andrepradika/campsite-search/model"
	"github.com/andrepradika/campsite-search/store"
)

// Build computes document frequencies, IDF scores, TF-IDF postings, and
// per-venue average ratings over a corpus whose documents already carry
// their normalized tokens. The outputs are treated as read-only for the
// lifetime of the process.
func Build(docs []model.Document) (index.IDFTable, *index.InvertedIndex, *store.MetadataStore) {
	n := len(docs)

	// Document frequency: each term counts once per document, however many
	// times it repeats inside that document.
	dfCounts := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, term := range doc.Tokens {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			dfCounts[term]++
		}
	}

	// idf = log10(N / df). Terms with df == 0 never reach this loop, so the
	// undefined case cannot be computed.
	idf := make(index.IDFTable, len(dfCounts))
	for term, df := range dfCounts {
		idf[term] = math.Log10(float64(n) / float64(df))
	}

	// Postings appended in corpus scan order, weight = tf * idf.
	invIndex := index.NewInvertedIndex()
	for _, doc := range docs {
		tfInDoc := make(map[string]int, len(doc.Tokens))
		termOrder := make([]string, 0, len(doc.Tokens))
		for _, term := range doc.Tokens {
			if _, seen := tfInDoc[term]; !seen {
				termOrder = append(termOrder, term)
			}
			tfInDoc[term]++
		}
		for _, term := range termOrder {
			weight := float64(tfInDoc[term]) * idf[term]
			invIndex.Terms[term] = append(invIndex.Terms[term], index.Posting{DocID: doc.DocID, Weight: weight})
		}
	}

	return idf, invIndex, buildMetadata(docs)
}

// buildMetadata groups documents by venue name, averages the ratings, and
// merges the average back onto every document's metadata row.
func buildMetadata(docs []model.Document) *store.MetadataStore {
	ratingSum := make(map[string]float64)
	ratingCount := make(map[string]int)
	for _, doc := range docs {
		ratingSum[doc.VenueName] += doc.Rating
		ratingCount[doc.VenueName]++
	}

	metadata := store.NewMetadataStore()
	seenVenues := make(map[string]struct{})
	for _, doc := range docs {
		avg := ratingSum[doc.VenueName] / float64(ratingCount[doc.VenueName])
		meta := model.VenueMeta{
			Name:      doc.VenueName,
			Location:  doc.Location,
			Rating:    doc.Rating,
			AvgRating: avg,
		}
		metadata.ByDoc[doc.DocID] = meta

		if _, seen := seenVenues[doc.VenueName]; !seen {
			seenVenues[doc.VenueName] = struct{}{}
			metadata.Venues = append(metadata.Venues, meta)
		}
	}
	return metadata
}
