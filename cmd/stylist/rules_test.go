package main

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_DumpsBuiltInRules(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)

	var dump types.RulesDump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	require.Len(t, dump.Rules, 12)
	assert.Equal(t, "R1", dump.Rules[0].ID)
	assert.Equal(t, "R12", dump.Rules[11].ID)
}

func TestRulesCommand_ValidateOnly(t *testing.T) {
	out, err := execute(t, "rules", "--validate-only")
	require.NoError(t, err)
	assert.Equal(t, "Validation passed: 12 rules in built-in rules\n", out)
}

func TestRulesCommand_Table(t *testing.T) {
	out, err := execute(t, "rules", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "KNOWLEDGE BASE")
	assert.Contains(t, out, "Total rules: 12")
}

func TestRulesCommand_CustomFile(t *testing.T) {
	path := writeFile(t, "rules.yaml", customRulesYAML)

	out, err := execute(t, "rules", "--rules", path, "--validate-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed: 2 rules in "+path)
}

func TestRulesCommand_RulesFromConfigFile(t *testing.T) {
	path := writeFile(t, "rules.yaml", customRulesYAML)
	cfgPath := writeFile(t, "config.yaml", "rules:\n  path: "+path+"\n")

	out, err := execute(t, "rules", "--config", cfgPath)
	require.NoError(t, err)

	var dump types.RulesDump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	require.Len(t, dump.Rules, 2)
	assert.Equal(t, "C1", dump.Rules[0].ID)
}

func TestRulesCommand_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{
			name:    "duplicate ids",
			file:    "dup.json",
			content: `{"rules": [{"id": "X", "conditions": {"gender": "male"}, "recommendation": {"title": "A", "items": [], "explanation": ""}, "confidence": 0.5}, {"id": "X", "conditions": {"gender": "male"}, "recommendation": {"title": "B", "items": [], "explanation": ""}, "confidence": 0.5}]}`,
			errPart: "duplicate",
		},
		{
			name:    "unknown attribute",
			file:    "attr.yaml",
			content: "rules:\n  - id: X\n    conditions:\n      shoe_size: \"42\"\n    recommendation:\n      title: A\n      items: []\n      explanation: \"\"\n    confidence: 0.5\n",
			errPart: "failed to load rules",
		},
		{
			name:    "unsupported extension",
			file:    "rules.txt",
			content: "rules",
			errPart: "failed to load rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := execute(t, "rules", "--rules", path, "--validate-only")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestRulesCommand_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "rules", "--config", "does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
