// Package config provides the process-wide settings for the search service:
// file locations of the corpus, assets, and lexical resources, the HTTP
// server, and the history sink.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the root configuration, loaded from a YAML file with defaults
// applied for everything left unset.
type Settings struct {
	Server  ServerSettings  `yaml:"server"`
	Corpus  CorpusSettings  `yaml:"corpus"`
	Lexicon LexiconSettings `yaml:"lexicon"`
	History HistorySettings `yaml:"history"`
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Port string `yaml:"port"`
}

// CorpusSettings locates the review corpus and the prebuilt asset blobs.
type CorpusSettings struct {
	File      string `yaml:"file"`       // review corpus CSV
	AssetsDir string `yaml:"assets_dir"` // gob blobs produced by `campsearch build`
}

// LexiconSettings locates the lexical resource files. Missing files degrade
// to empty resources at load time, they are not validated here.
type LexiconSettings struct {
	PhraseFile   string `yaml:"phrase_file"`
	RegionFile   string `yaml:"region_file"`
	IntentFile   string `yaml:"intent_file"`
	StopwordFile string `yaml:"stopword_file"`
	FluffFile    string `yaml:"fluff_file"`
	DefaultToken string `yaml:"default_token"`
}

// HistorySettings selects the best-effort query-history sink.
type HistorySettings struct {
	Sink string `yaml:"sink"` // "csv", "sqlite", or "none"
	Path string `yaml:"path"`
}

// DefaultSettings returns the configuration used when no file is given.
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{Port: "8080"},
		Corpus: CorpusSettings{
			File:      "data/reviews.csv",
			AssetsDir: "data/assets",
		},
		Lexicon: LexiconSettings{
			PhraseFile:   "data/lexicon/phrase_map.csv",
			RegionFile:   "data/lexicon/region_map.csv",
			IntentFile:   "data/lexicon/intent_map.csv",
			StopwordFile: "data/lexicon/stopwords.txt",
			DefaultToken: "kemah",
		},
		History: HistorySettings{
			Sink: "csv",
			Path: "data/history/search_history.csv",
		},
	}
}

// Load reads settings from a YAML file, filling in defaults for unset
// fields. An empty path returns the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	settings.applyDefaults()
	return settings, nil
}

// applyDefaults backfills fields the file left empty.
func (s *Settings) applyDefaults() {
	defaults := DefaultSettings()
	if s.Server.Port == "" {
		s.Server.Port = defaults.Server.Port
	}
	if s.Corpus.File == "" {
		s.Corpus.File = defaults.Corpus.File
	}
	if s.Corpus.AssetsDir == "" {
		s.Corpus.AssetsDir = defaults.Corpus.AssetsDir
	}
	if s.Lexicon.DefaultToken == "" {
		s.Lexicon.DefaultToken = defaults.Lexicon.DefaultToken
	}
	if s.History.Sink == "" {
		s.History.Sink = "none"
	}
}
