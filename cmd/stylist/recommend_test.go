package main

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formalMaleFlags = []string{
	"--gender", "male",
	"--occasion", "formal",
	"--weather", "mild",
	"--body-type", "athletic",
	"--style", "classic",
}

func TestRecommendCommand_Text(t *testing.T) {
	out, err := execute(t, append([]string{"recommend"}, formalMaleFlags...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "#1 NAVY TWO PIECE SUIT")
	assert.Contains(t, out, "Confidence: 1.00")
	assert.NotContains(t, out, "INFERENCE TRACE")
}

func TestRecommendCommand_JSON(t *testing.T) {
	out, err := execute(t, append([]string{"recommend", "--json"}, formalMaleFlags...)...)
	require.NoError(t, err)

	var resp types.RecommendationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Navy Two Piece Suit", resp.Recommendations[0].Title)
	assert.Contains(t, resp.Recommendations[0].MatchedRules, "R1")
}

func TestRecommendCommand_Verbose(t *testing.T) {
	out, err := execute(t, append([]string{"recommend", "--verbose"}, formalMaleFlags...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "USER PROFILE")
	assert.Contains(t, out, "INFERENCE TRACE")
	assert.Contains(t, out, "Rules evaluated:  12")
}

func TestRecommendCommand_MissingAttributes(t *testing.T) {
	_, err := execute(t, "recommend", "--gender", "male", "--occasion", "formal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required attributes")
	assert.Contains(t, err.Error(), "weather")
	assert.Contains(t, err.Error(), "body_type")
	assert.Contains(t, err.Error(), "preferred_style")
}

func TestRecommendCommand_Fallback(t *testing.T) {
	out, err := execute(t, "recommend", "--json",
		"--gender", "male", "--occasion", "none", "--weather", "none", "--body-type", "none", "--style", "none")
	require.NoError(t, err)

	var resp types.RecommendationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "Safe Classic Style", resp.Recommendations[0].Title)
	assert.True(t, resp.Recommendations[0].IsFallback())
}

func TestRecommendCommand_InputFileWithOverride(t *testing.T) {
	path := writeFile(t, "profile.json", `{
		"gender": "male",
		"occasion": "formal",
		"weather": "mild",
		"body_type": "athletic",
		"preferred_style": "classic",
		"color_preference": "neutral"
	}`)

	out, err := execute(t, "recommend", "--json", "--input", path, "--gender", "female")
	require.NoError(t, err)

	var resp types.RecommendationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Elegant Sheath Dress or Blazer Suit", resp.Recommendations[0].Title)
}

func TestRecommendCommand_InputYAML(t *testing.T) {
	path := writeFile(t, "profile.yaml", `gender: male
occasion: formal
weather: mild
body_type: athletic
preferred_style: classic
`)

	out, err := execute(t, "recommend", "--json", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Navy Two Piece Suit")
}

func TestRecommendCommand_InputInvalidType(t *testing.T) {
	path := writeFile(t, "profile.json", `{"gender": 3, "occasion": "formal", "weather": "mild", "body_type": "slim", "preferred_style": "classic"}`)

	_, err := execute(t, "recommend", "--input", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestRecommendCommand_CustomRules(t *testing.T) {
	rules := writeFile(t, "rules.yaml", customRulesYAML)

	out, err := execute(t, "recommend", "--json", "--rules", rules,
		"--gender", "female", "--occasion", "wedding", "--weather", "hot", "--body-type", "slim", "--style", "classic")
	require.NoError(t, err)

	var resp types.RecommendationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Recommendations, 1)
	rec := resp.Recommendations[0]
	assert.Equal(t, "Linen Summer Suit", rec.Title)
	assert.Equal(t, []string{"C1", "C2"}, rec.MatchedRules)
	// (0.8 + 0.6) / 2 + 0.1 + 0.1
	assert.Equal(t, 0.9, rec.Confidence)
	assert.Equal(t, "Breathable and festive.", rec.Explanation)
}

func TestRecommendCommand_Batch(t *testing.T) {
	path := writeFile(t, "profiles.json", `[
		{"gender": "male", "occasion": "formal", "weather": "mild", "body_type": "athletic", "preferred_style": "classic"},
		{"gender": "male", "occasion": "casual", "weather": "hot", "body_type": "slim", "preferred_style": "modern"},
		{"gender": "female", "occasion": "none", "weather": "none", "body_type": "none", "preferred_style": "none", "height": null}
	]`)

	out, err := execute(t, "recommend", "--json", "--batch", path)
	require.NoError(t, err)

	var responses []types.RecommendationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &responses))
	require.Len(t, responses, 3)
	assert.Equal(t, "Navy Two Piece Suit", responses[0].Recommendations[0].Title)
	assert.Equal(t, "Light Casual Chic", responses[1].Recommendations[0].Title)
	assert.Equal(t, "Versatile Chic Style", responses[2].Recommendations[0].Title)
}

func TestRecommendCommand_BatchText(t *testing.T) {
	path := writeFile(t, "profiles.yaml", `- gender: male
  occasion: formal
  weather: mild
  body_type: athletic
  preferred_style: classic
- gender: male
  occasion: casual
  weather: hot
  body_type: slim
  preferred_style: modern
`)

	out, err := execute(t, "recommend", "--batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile 1 of 2")
	assert.Contains(t, out, "Profile 2 of 2")
	assert.Contains(t, out, "LIGHT CASUAL CHIC")
}

func TestRecommendCommand_BatchInvalidProfile(t *testing.T) {
	path := writeFile(t, "profiles.json", `[
		{"gender": "male", "occasion": "formal", "weather": "mild", "body_type": "athletic", "preferred_style": "classic"},
		{"gender": "male"}
	]`)

	_, err := execute(t, "recommend", "--batch", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile 1")
}

func TestRecommendCommand_BatchEmpty(t *testing.T) {
	path := writeFile(t, "profiles.json", `[]`)

	_, err := execute(t, "recommend", "--batch", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no profiles")
}

func TestRecommendCommand_BatchAndInputExclusive(t *testing.T) {
	_, err := execute(t, "recommend", "--batch", "a.json", "--input", "b.json")
	require.Error(t, err)
}

func TestRecommendAll_PreservesOrder(t *testing.T) {
	inputs := make([]types.UserInput, 50)
	for i := range inputs {
		inputs[i] = types.UserInput{Gender: string(rune('a' + i%26))}
	}

	var calls atomic.Int32
	results, err := recommendAll(context.Background(), inputs, func(in types.UserInput) []types.Recommendation {
		calls.Add(1)
		return []types.Recommendation{{Title: in.Gender}}
	})
	require.NoError(t, err)

	assert.Equal(t, int32(len(inputs)), calls.Load())
	for i, recs := range results {
		assert.Equal(t, inputs[i].Gender, recs[0].Title)
	}
}

func TestRecommendAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := recommendAll(ctx, []types.UserInput{{}}, func(types.UserInput) []types.Recommendation {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
