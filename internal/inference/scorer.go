package inference

// MatchBonusWeight is the confidence credit awarded per fully satisfied rule.
const MatchBonusWeight = 0.1

// MatchBonus returns the share of conditions satisfied by facts scaled by MatchBonusWeight.
// It is only called for rules that already matched, so the result is always
// MatchBonusWeight; merged candidates accumulate it additively.
func MatchBonus(conditions, facts map[string]string) float64 {
	if len(conditions) == 0 {
		return 0
	}

	matched := 0
	for attr, expected := range conditions {
		if actual, ok := facts[attr]; ok && actual == expected {
			matched++
		}
	}
	return float64(matched) / float64(len(conditions)) * MatchBonusWeight
}
