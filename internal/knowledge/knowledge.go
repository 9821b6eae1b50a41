// Package knowledge holds the rule table the inference engine evaluates.
// The default rule set is compiled in as an embedded JSON asset; alternative
// rule sets can be loaded from JSON or YAML files. A KnowledgeBase is immutable
// once constructed and safe for concurrent reads.
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/jonathan/stylist-expert/internal/schemas"
	"github.com/jonathan/stylist-expert/internal/types"
	schemafiles "github.com/jonathan/stylist-expert/schemas"
	"gopkg.in/yaml.v3"
)

//go:embed rules.json
var defaultRules []byte

var (
	// ErrInvalidRule indicates a rule that violates the knowledge base invariants.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrDuplicateRuleID indicates two rules share an id.
	ErrDuplicateRuleID = errors.New("duplicate rule id")
	// ErrUnsupportedFormat indicates a rule file extension that cannot be parsed.
	ErrUnsupportedFormat = errors.New("unsupported rule file format")
)

// Format identifies the encoding of a rule document.
type Format string

// Supported rule document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// KnowledgeBase is an immutable ordered collection of rules.
type KnowledgeBase struct {
	rules []types.Rule
	index map[string]int
}

var (
	defaultOnce sync.Once
	defaultKB   *KnowledgeBase
	defaultErr  error
)

// Default returns the compiled-in knowledge base. It is parsed once per process.
func Default() (*KnowledgeBase, error) {
	defaultOnce.Do(func() {
		defaultKB, defaultErr = Parse(defaultRules, FormatJSON)
	})
	return defaultKB, defaultErr
}

// MustDefault returns the compiled-in knowledge base, panicking if it is invalid.
func MustDefault() *KnowledgeBase {
	kb, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded knowledge base is invalid: %v", err))
	}
	return kb
}

// New builds a knowledge base from rules in evaluation order.
// The rules are deep-copied; later changes to the argument are not observed.
func New(rules []types.Rule) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		rules: make([]types.Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}

	for i, rule := range rules {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, rule.ID, err)
		}
		if _, exists := kb.index[rule.ID]; exists {
			return nil, fmt.Errorf("rule %d: %w: %s", i, ErrDuplicateRuleID, rule.ID)
		}
		kb.index[rule.ID] = len(kb.rules)
		kb.rules = append(kb.rules, rule.Clone())
	}

	return kb, nil
}

// Parse decodes a rule document of the given format and builds a knowledge base.
// JSON documents are checked against the rules schema before decoding; YAML
// documents are converted to JSON first so the same schema applies.
func Parse(data []byte, format Format) (*KnowledgeBase, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err := schemas.ValidateJSONBytes(schemafiles.MustRead(schemafiles.RulesSchema), data); err != nil {
		return nil, fmt.Errorf("rule document does not match schema: %w", err)
	}

	var dump types.RulesDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse rule document: %w", err)
	}

	return New(dump.Rules)
}

// LoadFile reads a rule document from disk. The format is chosen from the file extension.
func LoadFile(path string) (*KnowledgeBase, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	kb, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule file %s: %w", path, err)
	}
	return kb, nil
}

// Load returns the knowledge base at path, or the compiled-in one when path is empty.
func Load(path string) (*KnowledgeBase, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Len returns the number of rules.
func (kb *KnowledgeBase) Len() int {
	return len(kb.rules)
}

// Rules returns a deep copy of all rules in evaluation order.
func (kb *KnowledgeBase) Rules() []types.Rule {
	out := make([]types.Rule, len(kb.rules))
	for i, rule := range kb.rules {
		out[i] = rule.Clone()
	}
	return out
}

// Rule returns a copy of the rule with the given id.
func (kb *KnowledgeBase) Rule(id string) (types.Rule, bool) {
	i, ok := kb.index[id]
	if !ok {
		return types.Rule{}, false
	}
	return kb.rules[i].Clone(), true
}

// Dump returns the read-only view served to administrators.
func (kb *KnowledgeBase) Dump() types.RulesDump {
	return types.RulesDump{Rules: kb.Rules()}
}

func validateRule(rule types.Rule) error {
	if strings.TrimSpace(rule.ID) == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidRule)
	}
	if len(rule.Conditions) == 0 {
		return fmt.Errorf("%w: conditions are empty", ErrInvalidRule)
	}
	for attr, expected := range rule.Conditions {
		if !types.IsAttribute(attr) {
			return fmt.Errorf("%w: unknown attribute %q", ErrInvalidRule, attr)
		}
		if expected == "" {
			return fmt.Errorf("%w: empty expected value for %q", ErrInvalidRule, attr)
		}
	}
	if strings.TrimSpace(rule.Recommendation.Title) == "" {
		return fmt.Errorf("%w: recommendation title is empty", ErrInvalidRule)
	}
	if math.IsNaN(rule.Confidence) || rule.Confidence < 0 || rule.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidRule, rule.Confidence)
	}
	return nil
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rule document: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML rule document: %w", err)
	}
	return out, nil
}
