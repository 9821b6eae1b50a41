// Package inference implements the forward-chaining recommendation engine:
// rule matching, match bonus scoring, merging of rules that share a title,
// ranking and the fallback used when nothing matches.
package inference

// Matches reports whether every condition is present in facts with an exactly equal value.
// An attribute missing from facts never satisfies a condition.
func Matches(conditions, facts map[string]string) bool {
	for attr, expected := range conditions {
		actual, ok := facts[attr]
		if !ok || actual != expected {
			return false
		}
	}
	return true
}
