// Package api exposes the search engine over HTTP. The handlers are thin
// glue: they parse the request, call the core, and render plain data. Best
// effort history recording happens off the request path.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrepradika/campsite-search/internal/history"
	"github.com/andrepradika/campsite-search/internal/metrics"
	"github.com/andrepradika/campsite-search/model"
	"github.com/andrepradika/campsite-search/services"
)

// API holds the dependencies of the HTTP handlers.
type API struct {
	analyzer services.QueryAnalyzer
	searcher services.Searcher
	recorder history.Recorder
	metrics  *metrics.Metrics
}

// NewAPI creates the handler set.
func NewAPI(analyzer services.QueryAnalyzer, searcher services.Searcher, recorder history.Recorder, m *metrics.Metrics) *API {
	if recorder == nil {
		recorder = history.NoopRecorder{}
	}
	return &API{analyzer: analyzer, searcher: searcher, recorder: recorder, metrics: m}
}

// SetupRoutes defines all HTTP routes.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/venues", apiHandler.ListVenuesHandler)
	router.GET("/history", apiHandler.HistoryHandler)
	if apiHandler.metrics != nil {
		router.GET("/metrics", gin.WrapH(apiHandler.metrics.Handler()))
	}
}

// HealthCheckHandler reports liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SearchHandler runs the full analyze+record+search cycle for ?q=.
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	rawQuery := c.Query("q")
	if rawQuery == "" {
		if api.metrics != nil {
			api.metrics.SearchesTotal.WithLabelValues("bad_request").Inc()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	analyzed := api.analyzer.Analyze(rawQuery)
	api.recordAsync(rawQuery, analyzed)

	results := api.searcher.Search(analyzed.Tokens, analyzed.Intent, analyzed.Region)

	if api.metrics != nil {
		api.metrics.SearchDuration.Observe(time.Since(startTime).Seconds())
		api.metrics.SearchResultsCount.Observe(float64(len(results)))
		api.metrics.SearchesTotal.WithLabelValues(searchOutcome(analyzed, results)).Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   rawQuery,
		"tokens":  analyzed.Tokens,
		"intent":  analyzed.Intent,
		"region":  analyzed.Region,
		"results": results,
	})
}

// ListVenuesHandler serves the listing path directly: every venue, region
// filtered when ?region= is set, rating sorted.
func (api *API) ListVenuesHandler(c *gin.Context) {
	region := c.Query("region")
	results := api.searcher.Search(nil, model.IntentAll, region)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// HistoryHandler returns recent search history when the configured sink can
// read entries back.
func (api *API) HistoryHandler(c *gin.Context) {
	reader, ok := api.recorder.(history.Reader)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "configured history sink cannot be read back"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := reader.Recent(limit)
	if err != nil {
		log.Printf("Warning: failed to read search history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read search history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// recordAsync writes the history entry off the request path. Failures are
// warnings, never search errors.
func (api *API) recordAsync(rawQuery string, analyzed model.AnalyzedQuery) {
	entry := history.Entry{
		Timestamp: time.Now(),
		Query:     rawQuery,
		Tokens:    analyzed.Tokens,
		Intent:    analyzed.Intent,
		Region:    analyzed.Region,
	}
	go func() {
		if err := api.recorder.Record(entry); err != nil {
			log.Printf("Warning: failed to record search history: %v", err)
			if api.metrics != nil {
				api.metrics.HistoryWriteFailures.Inc()
			}
		}
	}()
}

// searchOutcome labels a search for the metrics counter.
func searchOutcome(analyzed model.AnalyzedQuery, results []model.ResultRecord) string {
	switch {
	case analyzed.Intent == model.IntentAll:
		return "listing"
	case len(results) == 0:
		return "empty"
	default:
		return "ranked"
	}
}
