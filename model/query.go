package model

// Intent codes detected from trigger phrases. An empty string means no
// intent was detected.
const (
	IntentAll          = "ALL"
	IntentRatingTop    = "RATING_TOP"
	IntentRatingBottom = "RATING_BOTTOM"
)

// AnalyzedQuery is the outcome of query analysis: the final VSM tokens plus
// the detected intent and region codes. Empty Intent/Region mean "none".
type AnalyzedQuery struct {
	Tokens []string `json:"tokens"`
	Intent string   `json:"intent,omitempty"`
	Region string   `json:"region,omitempty"`
}
