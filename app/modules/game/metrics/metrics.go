// Package gamemetrics records Prometheus metrics for the game module.
package gamemetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GameMetrics is the metrics surface used by the game service, its queue and its
// event publisher.
type GameMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	RecordHandAppended(ctx context.Context, callKind string, euchre bool)
	RecordGameFinished(ctx context.Context)
	RecordGameReopened(ctx context.Context)
	RecordUnresolvableCall(ctx context.Context)
	RecordLedgerRepair(ctx context.Context, changedHands int)
	RecordEventPublishFailure(ctx context.Context, topic string)
}

const namespace = "euchre"

// PrometheusMetrics implements GameMetrics with client_golang collectors.
type PrometheusMetrics struct {
	attempts       *prometheus.CounterVec
	successes      *prometheus.CounterVec
	failures       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	hands          *prometheus.CounterVec
	finished       prometheus.Counter
	reopened       prometheus.Counter
	unresolvable   prometheus.Counter
	repairedHands  prometheus.Counter
	publishFailure *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	opLabels := []string{"operation", "service"}
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "game", Name: "operation_attempts_total",
			Help: "Service operations started.",
		}, opLabels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "game", Name: "operation_success_total",
			Help: "Service operations completed without infrastructure error.",
		}, opLabels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "game", Name: "operation_failure_total",
			Help: "Service operations that failed or panicked.",
		}, opLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "game", Name: "operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, opLabels),
		hands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ledger", Name: "hands_appended_total",
			Help: "Hands appended by call kind and penalty outcome.",
		}, []string{"call_kind", "euchre"}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "game", Name: "finished_total",
			Help: "Games that reached their target score.",
		}),
		reopened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "game", Name: "reopened_total",
			Help: "Finished games moved back to active by recalculation.",
		}),
		unresolvable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ledger", Name: "unresolvable_calls_total",
			Help: "Numeric-looking call values scored with the literal-point rule.",
		}),
		repairedHands: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ledger", Name: "repaired_hands_total",
			Help: "Hands whose number or cumulative pair was rewritten by recalculation.",
		}),
		publishFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "events", Name: "publish_failures_total",
			Help: "Events that could not be published after commit.",
		}, []string{"topic"}),
	}

	reg.MustRegister(
		m.attempts, m.successes, m.failures, m.duration, m.hands,
		m.finished, m.reopened, m.unresolvable, m.repairedHands, m.publishFailure,
	)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordHandAppended(_ context.Context, callKind string, euchre bool) {
	m.hands.WithLabelValues(callKind, strconv.FormatBool(euchre)).Inc()
}

func (m *PrometheusMetrics) RecordGameFinished(context.Context) { m.finished.Inc() }

func (m *PrometheusMetrics) RecordGameReopened(context.Context) { m.reopened.Inc() }

func (m *PrometheusMetrics) RecordUnresolvableCall(context.Context) { m.unresolvable.Inc() }

func (m *PrometheusMetrics) RecordLedgerRepair(_ context.Context, changedHands int) {
	m.repairedHands.Add(float64(changedHands))
}

func (m *PrometheusMetrics) RecordEventPublishFailure(_ context.Context, topic string) {
	m.publishFailure.WithLabelValues(topic).Inc()
}
