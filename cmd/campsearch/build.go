package main

import (
	"fmt"
	"log"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/andrepradika/campsite-search/config"
	"github.com/andrepradika/campsite-search/index"
	"github.com/andrepradika/campsite-search/internal/indexing"
	"github.com/andrepradika/campsite-search/internal/lexicon"
	"github.com/andrepradika/campsite-search/internal/persistence"
	"github.com/andrepradika/campsite-search/internal/tokenizer"
	"github.com/andrepradika/campsite-search/store"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search index from the review corpus",
	Long: `Build reads the review corpus CSV, normalizes every review, computes
TF-IDF weights, and writes the IDF table, inverted index, and venue
metadata as gob blobs to the assets directory.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	normalizer := newNormalizer(settings)

	idf, invIndex, metadata, err := buildAssets(settings, normalizer, true)
	if err != nil {
		return err
	}

	if err := persistence.SaveAssets(settings.Corpus.AssetsDir, idf, invIndex, metadata); err != nil {
		return fmt.Errorf("failed to save assets: %w", err)
	}

	log.Printf("Indexed %d reviews, %d terms, %d venues; assets written to %s",
		metadata.Len(), len(invIndex.Terms), len(metadata.Venues), settings.Corpus.AssetsDir)
	return nil
}

// newNormalizer wires the lexical resources and the Sastrawi stemmer into
// the text normalizer.
func newNormalizer(settings *config.Settings) *tokenizer.Normalizer {
	resources := loadLexicon(settings)
	return tokenizer.NewNormalizer(resources.Phrases, resources.Stopwords, tokenizer.NewSastrawiStemmer())
}

func loadLexicon(settings *config.Settings) *lexicon.Resources {
	return lexicon.Load(lexicon.Files{
		PhraseFile:   settings.Lexicon.PhraseFile,
		RegionFile:   settings.Lexicon.RegionFile,
		IntentFile:   settings.Lexicon.IntentFile,
		StopwordFile: settings.Lexicon.StopwordFile,
		FluffFile:    settings.Lexicon.FluffFile,
	}, settings.Lexicon.DefaultToken)
}

// buildAssets runs the offline batch build: load the corpus, normalize every
// review, and derive the three tables.
func buildAssets(settings *config.Settings, normalizer *tokenizer.Normalizer, showProgress bool) (index.IDFTable, *index.InvertedIndex, *store.MetadataStore, error) {
	docs, err := indexing.LoadCorpus(settings.Corpus.File)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(docs) == 0 {
		log.Printf("Warning: corpus %s is empty, building empty index", settings.Corpus.File)
	}

	var bar *progressbar.ProgressBar
	if showProgress && len(docs) > 0 {
		bar = progressbar.NewOptions(len(docs),
			progressbar.OptionSetDescription("Normalizing reviews"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	for i := range docs {
		docs[i].Tokens = normalizer.Normalize(docs[i].Text)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}

	idf, invIndex, metadata := indexing.Build(docs)
	return idf, invIndex, metadata, nil
}
