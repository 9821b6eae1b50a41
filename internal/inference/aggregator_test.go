package inference

import (
	"testing"

	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_GroupsByTitleInFirstSeenOrder(t *testing.T) {
	rules := []types.Rule{
		rule("R1", "Second", 0.5, map[string]string{"occasion": "gala"}),
		rule("R2", "First", 0.9, map[string]string{"weather": "snow"}),
		rule("R3", "Second", 0.7, map[string]string{"gender": "female"}),
		rule("R4", "Unmatched", 0.9, map[string]string{"gender": "male"}),
	}
	facts := map[string]string{"occasion": "gala", "weather": "snow", "gender": "female"}

	candidates := Aggregate(rules, facts)

	require.Len(t, candidates, 2)
	assert.Equal(t, "Second", candidates[0].Title)
	assert.Equal(t, []string{"R1", "R3"}, candidates[0].MatchedRuleIDs)
	assert.Equal(t, "R1", candidates[0].Source.ID)
	assert.InDelta(t, 0.6, candidates[0].Confidence, 1e-12)
	assert.InDelta(t, 0.2, candidates[0].MatchBonus, 1e-12)

	assert.Equal(t, "First", candidates[1].Title)
	assert.Equal(t, []string{"R2"}, candidates[1].MatchedRuleIDs)
	assert.InDelta(t, 0.1, candidates[1].MatchBonus, 1e-12)
}

func TestAggregate_NoMatches(t *testing.T) {
	rules := []types.Rule{rule("R1", "Only", 0.5, map[string]string{"occasion": "gala"})}
	assert.Empty(t, Aggregate(rules, map[string]string{"occasion": "picnic"}))
}

func TestRank_LimitAndFinalConfidence(t *testing.T) {
	candidates := []*Candidate{
		{Title: "Low", Source: rule("R1", "Low", 0.3, nil), MatchedRuleIDs: []string{"R1"}, Confidence: 0.3, MatchBonus: 0.1},
		{Title: "High", Source: rule("R2", "High", 0.9, nil), MatchedRuleIDs: []string{"R2", "R5"}, Confidence: 0.9, MatchBonus: 0.2},
		{Title: "Mid", Source: rule("R3", "Mid", 0.6, nil), MatchedRuleIDs: []string{"R3"}, Confidence: 0.6, MatchBonus: 0.1},
	}

	recs := Rank(candidates, 2)

	require.Len(t, recs, 2)
	assert.Equal(t, "High", recs[0].Title)
	assert.Equal(t, 1.0, recs[0].Confidence)
	assert.Equal(t, []string{"R2", "R5"}, recs[0].MatchedRules)
	assert.Equal(t, "Mid", recs[1].Title)
	assert.Equal(t, 0.7, recs[1].Confidence)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, MaxRecommendations))
}
