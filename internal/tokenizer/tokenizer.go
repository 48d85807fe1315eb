// Package tokenizer implements the text normalization pipeline that turns
// raw review or query text into VSM terms: character cleanup, complex-phrase
// substitution, tokenization, stopword removal, stemming, and short-token
// filtering.
package tokenizer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/RadhiFadlillah/go-sastrawi"

	"github.com/andrepradika/campsite-search/internal/lexicon"
)

// nonTextRegex matches every character outside letters, digits, and
// whitespace.
var nonTextRegex = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// digitRegex matches digit characters, removed after the special-character
// pass.
var digitRegex = regexp.MustCompile(`\d`)

// Stemmer reduces a token to its root form. The production implementation is
// the Sastrawi Indonesian stemmer; tests may substitute a fixture. Stemming
// must be idempotent: Stem(Stem(w)) == Stem(w).
type Stemmer interface {
	Stem(word string) string
}

// NewSastrawiStemmer returns the Sastrawi stemmer backed by its bundled root
// word dictionary.
func NewSastrawiStemmer() Stemmer {
	return sastrawi.NewStemmer(sastrawi.DefaultDictionary())
}

// phraseRule is one compiled substitution rule. When the word-boundary
// pattern for a phrase failed to compile, literal is set and a plain
// substring replace is used for that phrase only, so one bad rule cannot
// abort substitution of the rest.
type phraseRule struct {
	phrase  string
	token   string
	pattern *regexp.Regexp
	literal bool
}

// Normalizer runs the full normalization pipeline. Construct once with the
// loaded lexical resources; safe for concurrent use.
type Normalizer struct {
	rules     []phraseRule
	stopwords lexicon.Set
	stemmer   Stemmer
}

// NewNormalizer builds a Normalizer from the phrase map, stopword set, and
// stemmer. Phrase rules are ordered longest phrase first so a longer phrase
// is not pre-empted by a shorter substring match.
func NewNormalizer(phrases lexicon.Map, stopwords lexicon.Set, stemmer Stemmer) *Normalizer {
	entries := make([]lexicon.Entry, len(phrases.Entries))
	copy(entries, phrases.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Phrase) > len(entries[j].Phrase)
	})

	rules := make([]phraseRule, 0, len(entries))
	for _, entry := range entries {
		rule := phraseRule{phrase: entry.Phrase, token: entry.Code}
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(entry.Phrase) + `\b`)
		if err != nil {
			rule.literal = true
		} else {
			rule.pattern = pattern
		}
		rules = append(rules, rule)
	}

	return &Normalizer{rules: rules, stopwords: stopwords, stemmer: stemmer}
}

// Normalize turns raw text into the ordered sequence of normalized terms.
// Duplicates are kept; term frequency is computed downstream. The steps, in
// order: strip special characters, strip digits, substitute complex phrases,
// lowercase and split, drop stopwords, stem, drop tokens of length <= 1.
func (n *Normalizer) Normalize(text string) []string {
	if text == "" {
		return []string{}
	}

	cleaned := nonTextRegex.ReplaceAllString(text, "")
	cleaned = digitRegex.ReplaceAllString(cleaned, "")
	cleaned = n.substitutePhrases(cleaned)

	terms := make([]string, 0)
	for _, word := range strings.Fields(strings.ToLower(cleaned)) {
		if n.stopwords.Contains(word) {
			continue
		}
		stemmed := n.stemmer.Stem(word)
		if len(stemmed) <= 1 {
			continue
		}
		terms = append(terms, stemmed)
	}
	return terms
}

// substitutePhrases replaces every configured multi-word phrase with its
// single-token code. Matching is whole-word and case-insensitive: the input
// is lowercased first and the phrases are stored lowercased.
func (n *Normalizer) substitutePhrases(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range n.rules {
		if rule.literal {
			lowered = strings.ReplaceAll(lowered, rule.phrase, rule.token)
			continue
		}
		lowered = rule.pattern.ReplaceAllString(lowered, rule.token)
	}
	return lowered
}
