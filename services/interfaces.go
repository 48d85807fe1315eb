package services

import (
	"github.com/andrepradika/campsite-search/model"
)

// QueryAnalyzer turns a raw query into VSM tokens, intent, and region.
type QueryAnalyzer interface {
	Analyze(raw string) model.AnalyzedQuery
}

// Searcher ranks venues for an analyzed query. Implementations must be pure
// functions of their arguments plus the immutable loaded tables.
type Searcher interface {
	Search(tokens []string, intent, region string) []model.ResultRecord
}
