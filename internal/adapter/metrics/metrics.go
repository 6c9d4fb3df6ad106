// Package metrics records judge activity as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

var _ secondary.ResultSink = (*Recorder)(nil)

type Recorder struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	caseResults     *prometheus.CounterVec
	verdicts        *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "judge",
			Name:      "backend_requests_total",
			Help:      "Calls to the execution backend by operation and outcome.",
		}, []string{"backend", "operation", "outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "judge",
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of execution backend calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"backend", "operation"}),
		caseResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "judge",
			Name:      "case_results_total",
			Help:      "Judged test cases by status class and pass state.",
		}, []string{"class", "passed"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "judge",
			Name:      "verdicts_total",
			Help:      "Judged submissions by mode and verdict.",
		}, []string{"mode", "verdict"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.backendRequests,
		r.backendLatency,
		r.caseResults,
		r.verdicts,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) CaseFinished(_ context.Context, _ uuid.UUID, _ int, result domain.CaseResult) {
	passed := "false"
	if result.Passed {
		passed = "true"
	}
	r.caseResults.WithLabelValues(string(result.Class), passed).Inc()
}

func (r *Recorder) SubmissionFinished(_ context.Context, summary *domain.SubmissionSummary) {
	r.verdicts.WithLabelValues(string(summary.Mode), string(summary.Verdict)).Inc()
}

func (r *Recorder) observe(backend domain.BackendKind, op string, start time.Time, err error) {
	r.backendLatency.WithLabelValues(string(backend), op).Observe(time.Since(start).Seconds())
	r.backendRequests.WithLabelValues(string(backend), op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.IsUnsupportedLanguage(err):
		return "unsupported_language"
	case errs.IsBackendError(err):
		return "backend_error"
	default:
		return "error"
	}
}
