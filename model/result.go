package model

// ResultRecord is one venue in the ranked search output. The JSON field names
// are a stable contract consumed by the presentation layer.
type ResultRecord struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	AvgRating   float64 `json:"avg_rating"`
	TopVSMScore float64 `json:"top_vsm_score"`
}
