package inference

import "github.com/jonathan/stylist-expert/internal/types"

// FallbackConfidence is the fixed confidence of a fallback recommendation.
const FallbackConfidence = 0.7

// Fallback returns the canned recommendation used when no rule matched.
// Only the gender attribute is consulted.
func Fallback(input types.UserInput) types.Recommendation {
	if input.Gender == "male" {
		return types.Recommendation{
			Title:        "Safe Classic Style",
			Items:        []string{"Well-fitted jeans or chinos", "Solid color shirt or polo", "Clean sneakers or loafers"},
			Explanation:  "When in doubt, classic basics in neutral colors work for most situations. This safe approach ensures you look put-together.",
			Images:       []string{"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=800&h=600&fit=crop&crop=face"},
			Confidence:   FallbackConfidence,
			MatchedRules: []string{types.FallbackRuleID},
		}
	}

	return types.Recommendation{
		Title:        "Versatile Chic Style",
		Items:        []string{"Dark jeans or tailored pants", "Blouse or fitted top", "Ballet flats or low heels", "Simple accessories"},
		Explanation:  "A versatile outfit that works across multiple occasions. Classic pieces ensure you're appropriately dressed.",
		Images:       []string{"https://images.unsplash.com/photo-1494790108755-2616c9c0e8e0?w=800&h=600&fit=crop&crop=face"},
		Confidence:   FallbackConfidence,
		MatchedRules: []string{types.FallbackRuleID},
	}
}
