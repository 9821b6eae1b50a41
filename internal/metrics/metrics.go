// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/jonathan/stylist-expert/internal/inference"
	"github.com/jonathan/stylist-expert/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InferenceTotal counts inference calls by outcome ("matched" or "fallback").
	InferenceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylist_inference_total",
			Help: "Total number of inference calls by outcome",
		},
		[]string{"outcome"},
	)

	// RuleMatchesTotal counts how often each rule fired.
	RuleMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylist_rule_matches_total",
			Help: "Total number of times each rule matched user input",
		},
		[]string{"rule_id"},
	)

	// RecommendationsReturned observes the result size per inference call.
	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stylist_recommendations_returned",
			Help:    "Number of recommendations returned per inference call",
			Buckets: []float64{1, 2, 3},
		},
	)

	// KnowledgeBaseRules reports the number of loaded rules.
	KnowledgeBaseRules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stylist_knowledge_base_rules",
			Help: "Number of rules in the loaded knowledge base",
		},
	)

	// APIRequestsTotal counts HTTP requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylist_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylist_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylist_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// InferenceObserver feeds engine callbacks into the inference collectors.
type InferenceObserver struct{}

var _ inference.Observer = InferenceObserver{}

// RuleEvaluated counts matching rules.
func (InferenceObserver) RuleEvaluated(rule *types.Rule, matched bool) {
	if matched {
		RuleMatchesTotal.WithLabelValues(rule.ID).Inc()
	}
}

// InferenceCompleted records the outcome and result size.
func (InferenceObserver) InferenceCompleted(s inference.Summary) {
	outcome := "matched"
	if s.Fallback {
		outcome = "fallback"
	}
	InferenceTotal.WithLabelValues(outcome).Inc()
	RecommendationsReturned.Observe(float64(s.Returned))
}
