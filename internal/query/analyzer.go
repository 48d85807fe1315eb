// Package query implements query understanding: intent detection, region
// detection, and production of the final VSM tokens, including the fluff
// suppression and fallback rules for region-only queries.
package query

import (
	"strings"

	"github.com/andrepradika/campsite-search/internal/lexicon"
	"github.com/andrepradika/campsite-search/internal/tokenizer"
	"github.com/andrepradika/campsite-search/model"
)

// Analyzer turns a raw query into tokens, intent, and region. It is a pure
// function of its input plus the immutable lexical resources; safe for
// concurrent use.
type Analyzer struct {
	resources  *lexicon.Resources
	normalizer *tokenizer.Normalizer
}

// NewAnalyzer creates an Analyzer over the given resources and normalizer.
func NewAnalyzer(resources *lexicon.Resources, normalizer *tokenizer.Normalizer) *Analyzer {
	return &Analyzer{resources: resources, normalizer: normalizer}
}

// Analyze runs the full query-understanding pipeline:
//
//  1. Detect at most one intent; strip its trigger phrase from the query.
//  2. Detect at most one region on the intent-reduced text; strip it too.
//  3. Normalize the remainder into VSM tokens.
//  4. If a region was found and every token is generic fluff, drop all
//     tokens: the user only expressed a region filter.
//  5. If no tokens remain but an intent or region was found, substitute the
//     default topical token so ranking has something to match.
//  6. If that fallback fired with a region but no explicit intent, upgrade
//     the intent to ALL: list every venue in the region.
func (a *Analyzer) Analyze(raw string) model.AnalyzedQuery {
	remaining, intent := detectFirst(raw, a.resources.Intents)
	remaining, region := detectFirst(remaining, a.resources.Regions)

	tokens := a.normalizer.Normalize(remaining)

	if region != "" && allFluff(tokens, a.resources.FluffStems) {
		tokens = []string{}
	}

	if len(tokens) == 0 && (intent != "" || region != "") {
		tokens = []string{a.resources.DefaultToken}

		if intent == "" && region != "" {
			intent = model.IntentAll
		}
	}

	return model.AnalyzedQuery{Tokens: tokens, Intent: intent, Region: region}
}

// detectFirst scans the trigger phrases in map order against the lowercased
// text. The first phrase found is removed from the text and its code
// returned; scanning stops there, so at most one code is ever detected.
func detectFirst(text string, m lexicon.Map) (string, string) {
	lowered := strings.ToLower(text)
	code := ""

	for _, entry := range m.Entries {
		if strings.Contains(lowered, entry.Phrase) {
			code = entry.Code
			lowered = strings.ReplaceAll(lowered, entry.Phrase, "")
			break
		}
	}

	// Rebuild without the stripped phrase, collapsing leftover whitespace.
	return strings.Join(strings.Fields(lowered), " "), code
}

// allFluff reports whether tokens is non-empty and every token is in the
// fluff stem set.
func allFluff(tokens []string, fluff lexicon.Set) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		if !fluff.Contains(token) {
			return false
		}
	}
	return true
}
