package inference

import (
	"github.com/jonathan/stylist-expert/internal/knowledge"
	"github.com/jonathan/stylist-expert/internal/types"
)

// Engine evaluates a knowledge base against user input.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	kb       *knowledge.KnowledgeBase
	rules    []types.Rule
	observer Observer
	limit    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver attaches a tracing observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// NewEngine creates an engine over kb.
func NewEngine(kb *knowledge.KnowledgeBase, opts ...Option) *Engine {
	e := &Engine{
		kb:    kb,
		rules: kb.Rules(),
		limit: MaxRecommendations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Infer returns between one and MaxRecommendations recommendations for input,
// best first. When no rule matches, the single fallback recommendation is returned.
func (e *Engine) Infer(input types.UserInput) []types.Recommendation {
	facts := input.Facts()

	matched := 0
	var onEval func(*types.Rule, bool)
	if e.observer != nil {
		onEval = func(rule *types.Rule, ok bool) {
			if ok {
				matched++
			}
			e.observer.RuleEvaluated(rule, ok)
		}
	}

	candidates := aggregate(e.rules, facts, onEval)
	recs := Rank(candidates, e.limit)

	fallback := len(recs) == 0
	if fallback {
		recs = []types.Recommendation{Fallback(input)}
	}

	if e.observer != nil {
		e.observer.InferenceCompleted(Summary{
			RulesEvaluated: len(e.rules),
			RulesMatched:   matched,
			Candidates:     len(candidates),
			Returned:       len(recs),
			Fallback:       fallback,
		})
	}

	return recs
}

// Rules returns the read-only dump of the engine's knowledge base.
func (e *Engine) Rules() types.RulesDump {
	return e.kb.Dump()
}
