package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/andrepradika/campsite-search/api"
	"github.com/andrepradika/campsite-search/config"
	"github.com/andrepradika/campsite-search/internal/history"
	"github.com/andrepradika/campsite-search/internal/metrics"
	"github.com/andrepradika/campsite-search/internal/persistence"
	"github.com/andrepradika/campsite-search/internal/query"
	"github.com/andrepradika/campsite-search/internal/search"
	"github.com/andrepradika/campsite-search/internal/tokenizer"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API",
	Long: `Serve loads the prebuilt index assets (building them from the corpus
when they are absent) and exposes the search API over HTTP.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if servePort != "" {
		settings.Server.Port = servePort
	}

	resources := loadLexicon(settings)
	normalizer := tokenizer.NewNormalizer(resources.Phrases, resources.Stopwords, tokenizer.NewSastrawiStemmer())

	idf, invIndex, metadata, err := persistence.LoadAssets(settings.Corpus.AssetsDir)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("No prebuilt assets in %s, building from corpus %s", settings.Corpus.AssetsDir, settings.Corpus.File)
		idf, invIndex, metadata, err = buildAssets(settings, normalizer, false)
	}
	if err != nil {
		return fmt.Errorf("failed to load search assets: %w", err)
	}
	log.Printf("Search assets ready: %d documents, %d terms, %d venues",
		metadata.Len(), len(invIndex.Terms), len(metadata.Venues))

	searcher, err := search.NewService(idf, invIndex, metadata)
	if err != nil {
		return err
	}
	analyzer := query.NewAnalyzer(resources, normalizer)

	recorder, err := history.NewRecorder(settings.History.Sink, settings.History.Path)
	if err != nil {
		log.Printf("Warning: history disabled: %v", err)
		recorder = history.NoopRecorder{}
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	api.SetupRoutes(router, api.NewAPI(analyzer, searcher, recorder, metrics.New()))

	log.Printf("Starting server on port %s...", settings.Server.Port)
	if err := router.Run(":" + settings.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
