package inference

import "github.com/jonathan/stylist-expert/internal/types"

// Candidate accumulates every matching rule that recommends the same title.
type Candidate struct {
	Title          string
	Source         types.Rule
	MatchedRuleIDs []string
	Confidence     float64
	MatchBonus     float64
}

// merge folds another matching rule into the candidate.
// The confidence is a pairwise running average, so earlier rules weigh more.
func (c *Candidate) merge(rule types.Rule, bonus float64) {
	c.MatchedRuleIDs = append(c.MatchedRuleIDs, rule.ID)
	c.Confidence = (c.Confidence + rule.Confidence) / 2
	c.MatchBonus += bonus
}

// aggregator groups matched rules by recommendation title, keeping first-seen order.
type aggregator struct {
	candidates []*Candidate
	byTitle    map[string]int
}

func newAggregator() *aggregator {
	return &aggregator{byTitle: make(map[string]int)}
}

func (a *aggregator) add(rule types.Rule, bonus float64) {
	title := rule.Recommendation.Title
	if i, ok := a.byTitle[title]; ok {
		a.candidates[i].merge(rule, bonus)
		return
	}

	a.byTitle[title] = len(a.candidates)
	a.candidates = append(a.candidates, &Candidate{
		Title:          title,
		Source:         rule,
		MatchedRuleIDs: []string{rule.ID},
		Confidence:     rule.Confidence,
		MatchBonus:     bonus,
	})
}

// Aggregate matches rules against facts in order and merges matches by title.
func Aggregate(rules []types.Rule, facts map[string]string) []*Candidate {
	return aggregate(rules, facts, nil)
}

func aggregate(rules []types.Rule, facts map[string]string, onEval func(rule *types.Rule, matched bool)) []*Candidate {
	agg := newAggregator()
	for i := range rules {
		rule := &rules[i]
		matched := Matches(rule.Conditions, facts)
		if onEval != nil {
			onEval(rule, matched)
		}
		if matched {
			agg.add(*rule, MatchBonus(rule.Conditions, facts))
		}
	}
	return agg.candidates
}
