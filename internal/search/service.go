// Package search implements the ranking engine: query vectorization,
// dot-product scoring against the inverted index, per-venue aggregation, and
// the intent-driven listing and re-sorting paths.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrepradika/campsite-search/index"
	"github.com/andrepradika/campsite-search/model"
	"github.com/andrepradika/campsite-search/store"
)

// Service ranks venues for an analyzed query. It only reads the tables it is
// constructed with, so a single Service is safe for concurrent requests.
type Service struct {
	idf           index.IDFTable
	invertedIndex *index.InvertedIndex
	metadata      *store.MetadataStore
}

// NewService creates a search Service over the three immutable tables
// produced by the index build.
func NewService(idf index.IDFTable, invIndex *index.InvertedIndex, metadata *store.MetadataStore) (*Service, error) {
	if idf == nil {
		return nil, fmt.Errorf("idf table cannot be nil")
	}
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if metadata == nil {
		return nil, fmt.Errorf("metadata store cannot be nil")
	}
	return &Service{idf: idf, invertedIndex: invIndex, metadata: metadata}, nil
}

// Search returns the ranked venue records for the given tokens, intent, and
// region filter. It never fails for well-formed input: unknown terms and
// missing metadata are skipped, and an unanswerable query yields an empty
// slice.
func (s *Service) Search(tokens []string, intent, region string) []model.ResultRecord {
	if intent == model.IntentAll {
		return s.listAll(region)
	}
	return s.rank(tokens, intent, region)
}

// listAll is the listing path: every distinct venue, optionally filtered by
// region, sorted by average rating descending. VSM is not consulted, so
// every score is 0.
func (s *Service) listAll(region string) []model.ResultRecord {
	venues := s.metadata.DistinctVenues()

	records := make([]model.ResultRecord, 0, len(venues))
	for _, venue := range venues {
		if region != "" && !locationMatches(venue.Location, region) {
			continue
		}
		records = append(records, model.ResultRecord{
			Name:        venue.Name,
			Location:    venue.Location,
			AvgRating:   venue.AvgRating,
			TopVSMScore: 0.0,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AvgRating > records[j].AvgRating
	})
	return records
}

// rank is the VSM path: vectorize the query, score every document sharing a
// term with it, aggregate to the best-scoring document per venue, then apply
// the intent re-sort.
func (s *Service) rank(tokens []string, intent, region string) []model.ResultRecord {
	if len(tokens) == 0 {
		return []model.ResultRecord{}
	}

	// Term frequency over the query tokens, remembering first-appearance
	// order so the whole path stays deterministic.
	queryTF := make(map[string]int, len(tokens))
	termOrder := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, seen := queryTF[token]; !seen {
			termOrder = append(termOrder, token)
		}
		queryTF[token]++
	}

	// Query weights tf*idf, restricted to indexed terms. Terms absent from
	// the index contribute nothing: their idf is unknown. Involved documents
	// are collected in first-encounter order.
	queryWeights := make(map[string]float64)
	queryTerms := make([]string, 0, len(termOrder))
	involvedDocs := make([]int, 0)
	seenDocs := make(map[int]struct{})

	for _, term := range termOrder {
		idf, ok := s.idf[term]
		if !ok {
			continue
		}
		queryWeights[term] = float64(queryTF[term]) * idf
		queryTerms = append(queryTerms, term)

		for _, posting := range s.invertedIndex.Postings(term) {
			if _, seen := seenDocs[posting.DocID]; seen {
				continue
			}
			seenDocs[posting.DocID] = struct{}{}
			involvedDocs = append(involvedDocs, posting.DocID)
		}
	}

	if len(involvedDocs) == 0 {
		return []model.ResultRecord{}
	}

	// Dot product: score(doc) = sum over terms of W(t,d) * W(t,q).
	docScores := make(map[int]float64, len(involvedDocs))
	for _, term := range queryTerms {
		weight := queryWeights[term]
		for _, posting := range s.invertedIndex.Postings(term) {
			docScores[posting.DocID] += posting.Weight * weight
		}
	}

	// Rank documents by score descending. Ties keep first-encounter order.
	sort.SliceStable(involvedDocs, func(i, j int) bool {
		return docScores[involvedDocs[i]] > docScores[involvedDocs[j]]
	})

	// Aggregate to one record per venue: walking in score order, the first
	// document seen for a venue is its best review and wins.
	records := make([]model.ResultRecord, 0, len(involvedDocs))
	seenVenues := make(map[string]struct{})

	for _, docID := range involvedDocs {
		meta, ok := s.metadata.Get(docID)
		if !ok {
			continue
		}
		if region != "" && !locationMatches(meta.Location, region) {
			continue
		}
		if _, seen := seenVenues[meta.Name]; seen {
			continue
		}
		seenVenues[meta.Name] = struct{}{}
		records = append(records, model.ResultRecord{
			Name:        meta.Name,
			Location:    meta.Location,
			AvgRating:   meta.AvgRating,
			TopVSMScore: docScores[docID],
		})
	}

	switch intent {
	case model.IntentRatingTop:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].AvgRating > records[j].AvgRating
		})
	case model.IntentRatingBottom:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].AvgRating < records[j].AvgRating
		})
	}

	return records
}

// locationMatches reports whether the venue location contains the region
// code as a case-insensitive substring.
func locationMatches(location, region string) bool {
	return strings.Contains(strings.ToLower(location), strings.ToLower(region))
}
