package types

// Rule is a named condition set paired with one recommendation payload and a base confidence.
type Rule struct {
	ID             string             `json:"id" yaml:"id"`
	Conditions     map[string]string  `json:"conditions" yaml:"conditions"`
	Recommendation RuleRecommendation `json:"recommendation" yaml:"recommendation"`
	Confidence     float64            `json:"confidence" yaml:"confidence"`
	Images         []string           `json:"images" yaml:"images"`
}

// RuleRecommendation is the content a rule recommends when it fires.
type RuleRecommendation struct {
	Title       string   `json:"title" yaml:"title"`
	Items       []string `json:"items" yaml:"items"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// RulesDump is the read-only view of a knowledge base.
type RulesDump struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Clone returns a deep copy of the rule.
func (r Rule) Clone() Rule {
	out := r
	out.Conditions = make(map[string]string, len(r.Conditions))
	for k, v := range r.Conditions {
		out.Conditions[k] = v
	}
	out.Recommendation.Items = cloneStrings(r.Recommendation.Items)
	out.Images = cloneStrings(r.Images)
	return out
}

// cloneStrings copies s, returning an empty (non-nil) slice for nil so JSON renders [].
func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}
