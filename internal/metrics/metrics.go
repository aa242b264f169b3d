// Package metrics exposes Prometheus instruments for the directory.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "directory"

// Mutation outcomes.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Recorder groups the directory's instruments. A nil *Recorder records nothing, so
// callers never need to check whether metrics are enabled.
type Recorder struct {
	derivations        prometheus.Counter
	mutations          *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	saveLatency        prometheus.Histogram
}

// NewRecorder creates the instruments and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		derivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derivations_total",
			Help:      "Query pipeline runs.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Store mutations by operation and result.",
		}, []string{"op", "result"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected form fields.",
		}, []string{"field"}),
		saveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Time from save confirmation to store update.",
			Buckets:   []float64{.05, .1, .25, .5, .75, 1, 2, 5},
		}),
	}

	for _, c := range []prometheus.Collector{r.derivations, r.mutations, r.validationFailures, r.saveLatency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) Derivation() {
	if r == nil {
		return
	}
	r.derivations.Inc()
}

// Mutation counts one add, update or delete.
func (r *Recorder) Mutation(op, result string) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(op, result).Inc()
}

// ValidationFailed counts each rejected field once.
func (r *Recorder) ValidationFailed(fields ...string) {
	if r == nil {
		return
	}
	for _, f := range fields {
		r.validationFailures.WithLabelValues(f).Inc()
	}
}

func (r *Recorder) ObserveSave(d time.Duration) {
	if r == nil {
		return
	}
	r.saveLatency.Observe(d.Seconds())
}
