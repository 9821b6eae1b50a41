package inference

import (
	"math"
	"sort"
	"strconv"

	"github.com/jonathan/stylist-expert/internal/types"
)

// MaxRecommendations caps the number of recommendations returned per request.
const MaxRecommendations = 3

// FinalConfidence combines a candidate's confidence and bonus, clamped to 1 and rounded to 2 decimals.
func FinalConfidence(c *Candidate) float64 {
	return roundConfidence(math.Min(1.0, c.Confidence+c.MatchBonus))
}

// Rank materializes candidates as recommendations sorted by confidence (descending)
// and truncated to limit. Equal confidences keep candidate order. Displayed
// content always comes from the first rule that produced the title.
func Rank(candidates []*Candidate, limit int) []types.Recommendation {
	recs := make([]types.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, types.Recommendation{
			Title:        c.Source.Recommendation.Title,
			Items:        append(make([]string, 0, len(c.Source.Recommendation.Items)), c.Source.Recommendation.Items...),
			Explanation:  c.Source.Recommendation.Explanation,
			Images:       append(make([]string, 0, len(c.Source.Images)), c.Source.Images...),
			Confidence:   FinalConfidence(c),
			MatchedRules: append([]string(nil), c.MatchedRuleIDs...),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})

	if limit >= 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// roundConfidence rounds the exact binary value to 2 decimals, ties to even.
func roundConfidence(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
