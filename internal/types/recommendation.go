package types

// FallbackRuleID marks a recommendation produced when no rule matched.
const FallbackRuleID = "FALLBACK"

// Recommendation is a single ranked outfit suggestion.
type Recommendation struct {
	Title        string   `json:"title"`
	Items        []string `json:"items"`
	Explanation  string   `json:"explanation"`
	Images       []string `json:"images"`
	Confidence   float64  `json:"confidence"`
	MatchedRules []string `json:"matched_rules"`
}

// IsFallback reports whether the recommendation came from the fallback selector.
func (r Recommendation) IsFallback() bool {
	return len(r.MatchedRules) == 1 && r.MatchedRules[0] == FallbackRuleID
}

// RecommendationResponse is the response body for a recommendation request.
type RecommendationResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}
