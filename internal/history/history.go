// Package history records analyzed queries to a best-effort sink: a local
// CSV file, a SQLite database, or nowhere. Recording must never block or
// fail the search path; callers invoke it fire-and-forget and log failures
// as warnings.
package history

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one recorded search.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Tokens    []string  `json:"tokens"`
	Intent    string    `json:"intent,omitempty"`
	Region    string    `json:"region,omitempty"`
}

// joinedTokens renders the token list the way the log files store it.
func (e Entry) joinedTokens() string {
	return strings.Join(e.Tokens, " ")
}

// Recorder is the single capability the engine needs from a history sink.
// Implementations must be safe for concurrent use and must keep failures to
// themselves beyond the returned error.
type Recorder interface {
	Record(entry Entry) error
}

// Reader is implemented by sinks that can hand recent entries back for the
// admin view. Not every sink can.
type Reader interface {
	Recent(n int) ([]Entry, error)
}

// NoopRecorder discards everything. Used when history is disabled.
type NoopRecorder struct{}

// Record implements Recorder.
func (NoopRecorder) Record(Entry) error { return nil }

// NewRecorder builds the sink selected by name: "csv", "sqlite", or "none".
func NewRecorder(sink, path string) (Recorder, error) {
	switch sink {
	case "csv":
		return NewCSVRecorder(path), nil
	case "sqlite":
		return NewSQLiteRecorder(path)
	case "", "none":
		return NoopRecorder{}, nil
	default:
		return nil, fmt.Errorf("unknown history sink %q", sink)
	}
}
