package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrepradika/campsite-search/internal/history"
	"github.com/andrepradika/campsite-search/internal/metrics"
	"github.com/andrepradika/campsite-search/model"
)

// fakeAnalyzer returns a canned analysis for any query.
type fakeAnalyzer struct {
	result model.AnalyzedQuery
}

func (f *fakeAnalyzer) Analyze(string) model.AnalyzedQuery { return f.result }

// fakeSearcher records its arguments and returns canned results.
type fakeSearcher struct {
	mu         sync.Mutex
	lastTokens []string
	lastIntent string
	lastRegion string
	results    []model.ResultRecord
}

func (f *fakeSearcher) Search(tokens []string, intent, region string) []model.ResultRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTokens, f.lastIntent, f.lastRegion = tokens, intent, region
	return f.results
}

// channelRecorder hands recorded entries to the test over a channel, since
// recording happens off the request goroutine.
type channelRecorder struct {
	entries chan history.Entry
}

func (r *channelRecorder) Record(entry history.Entry) error {
	r.entries <- entry
	return nil
}

// readableRecorder is a Recorder that also implements history.Reader.
type readableRecorder struct {
	channelRecorder
	recent []history.Entry
}

func (r *readableRecorder) Recent(n int) ([]history.Entry, error) {
	if n < len(r.recent) {
		return r.recent[:n], nil
	}
	return r.recent, nil
}

func setupTestRouter(analyzer *fakeAnalyzer, searcher *fakeSearcher, recorder history.Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewAPI(analyzer, searcher, recorder, metrics.New()))
	return router
}

func TestSearchHandler(t *testing.T) {
	t.Run("missing query parameter", func(t *testing.T) {
		router := setupTestRouter(&fakeAnalyzer{}, &fakeSearcher{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("full analyze, record, search cycle", func(t *testing.T) {
		analyzer := &fakeAnalyzer{result: model.AnalyzedQuery{
			Tokens: []string{"kemah"},
			Intent: model.IntentRatingTop,
			Region: "diy",
		}}
		searcher := &fakeSearcher{results: []model.ResultRecord{
			{Name: "Pelangi Camp", Location: "Sleman, DIY", AvgRating: 4.5, TopVSMScore: 0.8},
		}}
		recorder := &channelRecorder{entries: make(chan history.Entry, 1)}
		router := setupTestRouter(analyzer, searcher, recorder)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?q=terbaik+di+jogja", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Query   string               `json:"query"`
			Tokens  []string             `json:"tokens"`
			Intent  string               `json:"intent"`
			Region  string               `json:"region"`
			Results []model.ResultRecord `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "terbaik di jogja", body.Query)
		assert.Equal(t, []string{"kemah"}, body.Tokens)
		assert.Equal(t, model.IntentRatingTop, body.Intent)
		assert.Equal(t, "diy", body.Region)
		require.Len(t, body.Results, 1)
		assert.Equal(t, "Pelangi Camp", body.Results[0].Name)

		assert.Equal(t, []string{"kemah"}, searcher.lastTokens)
		assert.Equal(t, model.IntentRatingTop, searcher.lastIntent)
		assert.Equal(t, "diy", searcher.lastRegion)

		select {
		case entry := <-recorder.entries:
			assert.Equal(t, "terbaik di jogja", entry.Query)
			assert.Equal(t, []string{"kemah"}, entry.Tokens)
			assert.Equal(t, "diy", entry.Region)
		case <-time.After(time.Second):
			t.Fatal("history entry was never recorded")
		}
	})

	t.Run("empty results still succeed", func(t *testing.T) {
		router := setupTestRouter(
			&fakeAnalyzer{result: model.AnalyzedQuery{Tokens: []string{"zzzz"}}},
			&fakeSearcher{results: []model.ResultRecord{}},
			nil,
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/search?q=zzzz", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListVenuesHandler(t *testing.T) {
	searcher := &fakeSearcher{results: []model.ResultRecord{
		{Name: "Pelangi Camp", Location: "Sleman, DIY", AvgRating: 4.5},
	}}
	router := setupTestRouter(&fakeAnalyzer{}, searcher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/venues?region=diy", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.IntentAll, searcher.lastIntent)
	assert.Equal(t, "diy", searcher.lastRegion)
	assert.Empty(t, searcher.lastTokens)
}

func TestHistoryHandler(t *testing.T) {
	t.Run("sink without read support", func(t *testing.T) {
		router := setupTestRouter(&fakeAnalyzer{}, &fakeSearcher{}, history.NoopRecorder{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})

	t.Run("readable sink returns entries", func(t *testing.T) {
		recorder := &readableRecorder{
			channelRecorder: channelRecorder{entries: make(chan history.Entry, 1)},
			recent: []history.Entry{
				{Query: "terbaik di jogja", Tokens: []string{"kemah"}},
				{Query: "kamar mandi bersih", Tokens: []string{"kamar", "mandi", "bersih"}},
			},
		}
		router := setupTestRouter(&fakeAnalyzer{}, &fakeSearcher{}, recorder)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history?limit=1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Entries []history.Entry `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Entries, 1)
	})

	t.Run("invalid limit", func(t *testing.T) {
		recorder := &readableRecorder{channelRecorder: channelRecorder{entries: make(chan history.Entry, 1)}}
		router := setupTestRouter(&fakeAnalyzer{}, &fakeSearcher{}, recorder)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history?limit=-3", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(&fakeAnalyzer{}, &fakeSearcher{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(&fakeAnalyzer{}, &fakeSearcher{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
