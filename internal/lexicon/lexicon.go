// Package lexicon loads the static lexical resources the query pipeline
// depends on: trigger-phrase maps (phrase substitution, region detection,
// intent detection), the stopword set, and the fluff stem set. Everything is
// loaded once at startup and treated as immutable afterwards. A missing or
// malformed file degrades to an empty resource with a warning, never a fatal
// error.
package lexicon

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Entry is a single trigger-phrase rule: a phrase mapped to a code (a
// substitution token, a region code, or an intent code).
type Entry struct {
	Phrase string
	Code   string
}

// Map is an ordered collection of trigger-phrase rules. Order matters:
// intent and region detection are first-match-wins over the file order, so
// entries keep the order they were loaded in.
type Map struct {
	Entries []Entry
}

// Len reports the number of rules.
func (m Map) Len() int { return len(m.Entries) }

// Set is a plain string membership set (stopwords, fluff stems).
type Set map[string]struct{}

// Contains reports whether the word is in the set.
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// NewSet builds a Set from words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// LoadMapCSV reads a two-column CSV file (phrase, code) into a Map. Lines
// starting with '#' are comments, extra columns are ignored, and rows with a
// blank phrase or code are dropped. A missing or unreadable file yields an
// empty Map and a warning: the engine keeps running in a degraded mode
// rather than aborting.
func LoadMapCSV(path string) Map {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: lexicon file %s not loaded, using empty map: %v", path, err)
		return Map{}
	}
	defer file.Close()

	m, err := readMapCSV(file)
	if err != nil {
		log.Printf("Warning: lexicon file %s malformed, using empty map: %v", path, err)
		return Map{}
	}
	log.Printf("Loaded %d rules from %s", m.Len(), path)
	return m
}

func readMapCSV(r io.Reader) (Map, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // extra columns (e.g. a category column) are allowed
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Map{}, fmt.Errorf("failed to parse csv: %w", err)
	}

	var m Map
	for i, record := range records {
		if i == 0 && looksLikeHeader(record) {
			continue
		}
		if len(record) < 2 {
			continue
		}
		phrase := strings.ToLower(strings.TrimSpace(record[0]))
		code := strings.TrimSpace(record[1])
		if phrase == "" || code == "" {
			continue
		}
		m.Entries = append(m.Entries, Entry{Phrase: phrase, Code: code})
	}
	return m, nil
}

// looksLikeHeader treats a first row whose second column is a known header
// word as a header. The original dictionary files carry a "key,value" or
// "frasa,token" header row.
func looksLikeHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(record[1])) {
	case "value", "token", "code", "kode", "region", "intent":
		return true
	}
	return false
}

// LoadStopwords reads a stopword file, one word per line, '#' comments
// allowed. A missing file yields an empty set and a warning.
func LoadStopwords(path string) Set {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: stopword file %s not loaded, using empty set: %v", path, err)
		return Set{}
	}
	defer file.Close()

	set := Set{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Warning: reading stopword file %s: %v", path, err)
	}
	log.Printf("Loaded %d stopwords from %s", len(set), path)
	return set
}

// DefaultFluffStems are stems of generic request words ("search", "show",
// "recommend" and friends) that carry no topical content. A region query
// whose tokens are all fluff is treated as a pure region filter.
func DefaultFluffStems() Set {
	return NewSet(
		"cari", "tampil", "lihat",
		"beri", "berikan",
		"saran", "sarankan",
		"rekomendasi", "rekomendasikan",
	)
}

// DefaultTopicalToken is substituted when analysis leaves no tokens but an
// intent or region was detected, so ranking still has something to match.
const DefaultTopicalToken = "kemah"

// Resources bundles every lexical resource the analyzer and normalizer need.
// Construct once at startup and inject; never mutate after load.
type Resources struct {
	Phrases      Map
	Regions      Map
	Intents      Map
	Stopwords    Set
	FluffStems   Set
	DefaultToken string
}

// Files names the on-disk locations of the lexical resources.
type Files struct {
	PhraseFile   string
	RegionFile   string
	IntentFile   string
	StopwordFile string
	FluffFile    string
}

// Load reads every lexical resource. Individual load failures degrade to
// empty resources; Load itself never fails.
func Load(files Files, defaultToken string) *Resources {
	res := &Resources{
		Phrases:      LoadMapCSV(files.PhraseFile),
		Regions:      LoadMapCSV(files.RegionFile),
		Intents:      LoadMapCSV(files.IntentFile),
		Stopwords:    LoadStopwords(files.StopwordFile),
		FluffStems:   DefaultFluffStems(),
		DefaultToken: defaultToken,
	}
	if files.FluffFile != "" {
		if set := LoadStopwords(files.FluffFile); len(set) > 0 {
			res.FluffStems = set
		}
	}
	if res.DefaultToken == "" {
		res.DefaultToken = DefaultTopicalToken
	}
	return res
}
