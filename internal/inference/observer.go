package inference

import (
	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/rs/zerolog"
)

// Summary describes one completed inference call.
type Summary struct {
	RulesEvaluated int
	RulesMatched   int
	Candidates     int
	Returned       int
	Fallback       bool
}

// Observer receives tracing callbacks from the engine.
// Implementations must be safe for concurrent use.
type Observer interface {
	RuleEvaluated(rule *types.Rule, matched bool)
	InferenceCompleted(summary Summary)
}

// LogObserver traces rule evaluation through a zerolog logger at debug level.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an observer that logs to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With().Str("component", "inference").Logger()}
}

// RuleEvaluated logs the outcome of a single rule.
func (o *LogObserver) RuleEvaluated(rule *types.Rule, matched bool) {
	o.logger.Debug().
		Str("rule_id", rule.ID).
		Interface("conditions", rule.Conditions).
		Bool("matched", matched).
		Msg("rule evaluated")
}

// InferenceCompleted logs the inference summary.
func (o *LogObserver) InferenceCompleted(s Summary) {
	o.logger.Debug().
		Int("rules_evaluated", s.RulesEvaluated).
		Int("rules_matched", s.RulesMatched).
		Int("candidates", s.Candidates).
		Int("returned", s.Returned).
		Bool("fallback", s.Fallback).
		Msg("inference completed")
}

// MultiObserver fans callbacks out to several observers in order.
type MultiObserver []Observer

// RuleEvaluated forwards to every observer.
func (m MultiObserver) RuleEvaluated(rule *types.Rule, matched bool) {
	for _, o := range m {
		o.RuleEvaluated(rule, matched)
	}
}

// InferenceCompleted forwards to every observer.
func (m MultiObserver) InferenceCompleted(s Summary) {
	for _, o := range m {
		o.InferenceCompleted(s)
	}
}
