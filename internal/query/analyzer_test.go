package query

import (
	"reflect"
	"testing"

	"github.com/andrepradika/campsite-search/internal/lexicon"
	"github.com/andrepradika/campsite-search/internal/tokenizer"
	"github.com/andrepradika/campsite-search/model"
)

// identityStemmer keeps the analyzer tests independent of the Sastrawi
// dictionary; every fixture word is already a root word.
type identityStemmer struct{}

func (identityStemmer) Stem(word string) string { return word }

func newTestResources() *lexicon.Resources {
	return &lexicon.Resources{
		Phrases: lexicon.Map{Entries: []lexicon.Entry{
			{Phrase: "kamar mandi", Code: "kamar_mandi"},
		}},
		Regions: lexicon.Map{Entries: []lexicon.Entry{
			{Phrase: "jogja", Code: "diy"},
			{Phrase: "semarang", Code: "jawa tengah"},
		}},
		Intents: lexicon.Map{Entries: []lexicon.Entry{
			{Phrase: "terbaik", Code: model.IntentRatingTop},
			{Phrase: "terburuk", Code: model.IntentRatingBottom},
			{Phrase: "semua", Code: model.IntentAll},
		}},
		Stopwords:    lexicon.NewSet("di", "yang", "tempat"),
		FluffStems:   lexicon.DefaultFluffStems(),
		DefaultToken: "kemah",
	}
}

func newTestAnalyzer(res *lexicon.Resources) *Analyzer {
	normalizer := tokenizer.NewNormalizer(res.Phrases, res.Stopwords, identityStemmer{})
	return NewAnalyzer(res, normalizer)
}

func TestAnalyze(t *testing.T) {
	analyzer := newTestAnalyzer(newTestResources())

	tests := []struct {
		name string
		raw  string
		want model.AnalyzedQuery
	}{
		{
			name: "topical query without intent or region",
			raw:  "kamar mandi bersih",
			want: model.AnalyzedQuery{Tokens: []string{"kamar_mandi", "bersih"}, Intent: "", Region: ""},
		},
		{
			name: "intent and region only falls back to default token",
			raw:  "terbaik di jogja",
			want: model.AnalyzedQuery{Tokens: []string{"kemah"}, Intent: model.IntentRatingTop, Region: "diy"},
		},
		{
			name: "fluff plus region upgrades intent to ALL",
			raw:  "cari di semarang",
			want: model.AnalyzedQuery{Tokens: []string{"kemah"}, Intent: model.IntentAll, Region: "jawa tengah"},
		},
		{
			name: "region with topical content keeps tokens and gets no intent",
			raw:  "sungai jernih di jogja",
			want: model.AnalyzedQuery{Tokens: []string{"sungai", "jernih"}, Intent: "", Region: "diy"},
		},
		{
			name: "intent with topical content keeps tokens",
			raw:  "terbaik sungai jernih",
			want: model.AnalyzedQuery{Tokens: []string{"sungai", "jernih"}, Intent: model.IntentRatingTop, Region: ""},
		},
		{
			name: "fluff without region is kept",
			raw:  "cari sungai",
			want: model.AnalyzedQuery{Tokens: []string{"cari", "sungai"}, Intent: "", Region: ""},
		},
		{
			name: "explicit ALL intent",
			raw:  "semua di semarang",
			want: model.AnalyzedQuery{Tokens: []string{"kemah"}, Intent: model.IntentAll, Region: "jawa tengah"},
		},
		{
			name: "rating bottom intent",
			raw:  "terburuk di jogja",
			want: model.AnalyzedQuery{Tokens: []string{"kemah"}, Intent: model.IntentRatingBottom, Region: "diy"},
		},
		{
			name: "empty query yields nothing",
			raw:  "",
			want: model.AnalyzedQuery{Tokens: []string{}, Intent: "", Region: ""},
		},
		{
			name: "stopwords only yields nothing without intent or region",
			raw:  "di yang tempat",
			want: model.AnalyzedQuery{Tokens: []string{}, Intent: "", Region: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Analyze(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Analyze(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAnalyzeDetectionOrder(t *testing.T) {
	// Overlapping trigger phrases: the first rule in file order wins, not the
	// most specific one. This mirrors the original configuration semantics.
	res := newTestResources()
	res.Intents = lexicon.Map{Entries: []lexicon.Entry{
		{Phrase: "paling bagus sekali", Code: "SPECIFIC"},
		{Phrase: "paling bagus", Code: "GENERIC"},
	}}
	analyzer := newTestAnalyzer(res)

	if got := analyzer.Analyze("paling bagus sekali sungai"); got.Intent != "SPECIFIC" {
		t.Errorf("Intent = %q, want SPECIFIC (file order wins)", got.Intent)
	}

	res.Intents.Entries[0], res.Intents.Entries[1] = res.Intents.Entries[1], res.Intents.Entries[0]
	analyzer = newTestAnalyzer(res)

	got := analyzer.Analyze("paling bagus sekali sungai")
	if got.Intent != "GENERIC" {
		t.Errorf("Intent = %q, want GENERIC (file order wins)", got.Intent)
	}
}

func TestAnalyzeAtMostOneRegion(t *testing.T) {
	analyzer := newTestAnalyzer(newTestResources())

	got := analyzer.Analyze("sungai di jogja semarang")
	if got.Region != "diy" {
		t.Errorf("Region = %q, want %q (first match only)", got.Region, "diy")
	}
	// The second region phrase is left in the text and flows through
	// normalization like any other token.
	if !reflect.DeepEqual(got.Tokens, []string{"sungai", "semarang"}) {
		t.Errorf("Tokens = %v, want [sungai semarang]", got.Tokens)
	}
}

func TestAnalyzeIsPure(t *testing.T) {
	analyzer := newTestAnalyzer(newTestResources())

	first := analyzer.Analyze("terbaik kamar mandi di jogja")
	second := analyzer.Analyze("terbaik kamar mandi di jogja")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze() not deterministic: %+v vs %+v", first, second)
	}
}
