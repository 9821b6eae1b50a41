package observability

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/stylist-expert/internal/inference"
	"github.com/jonathan/stylist-expert/internal/types"
)

// Tracer records rule evaluations for a single inference call so they can be
// printed afterwards.
type Tracer struct {
	mu      sync.Mutex
	matched []string
	summary inference.Summary
}

var _ inference.Observer = (*Tracer)(nil)

// RuleEvaluated records one rule outcome.
func (t *Tracer) RuleEvaluated(rule *types.Rule, matched bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if matched {
		t.matched = append(t.matched, rule.ID)
	}
}

// InferenceCompleted records the summary.
func (t *Tracer) InferenceCompleted(s inference.Summary) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary = s
}

// Matched returns the ids of rules that fired, in evaluation order.
func (t *Tracer) Matched() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.matched...)
}

// PrintTrace outputs what the tracer recorded.
func (p *Printer) PrintTrace(t *Tracer) {
	if t == nil {
		return
	}

	t.mu.Lock()
	s := t.summary
	matched := strings.Join(t.matched, ", ")
	t.mu.Unlock()

	if matched == "" {
		matched = "none"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rules evaluated:  %d\n", s.RulesEvaluated))
	sb.WriteString(fmt.Sprintf("Rules matched:    %d (%s)\n", s.RulesMatched, matched))
	sb.WriteString(fmt.Sprintf("Candidates:       %d\n", s.Candidates))
	sb.WriteString(fmt.Sprintf("Returned:         %d\n", s.Returned))
	if s.Fallback {
		sb.WriteString("No rule matched; fallback used\n")
	}

	p.printBox("INFERENCE TRACE", sb.String())
}
