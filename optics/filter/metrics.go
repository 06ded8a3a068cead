package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes.
const (
	resolvedOK      = "ok"
	resolvedUnknown = "unknown"
	resolvedError   = "error"
)

// Metrics exposes resolver and remote-fetch counters. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	Resolutions   *prometheus.CounterVec
	FetchAttempts *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
}

// NewMetrics registers filter metrics with reg, or with the default
// registerer when reg is nil. Registering twice against the same registry
// returns the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etc_filter_resolutions_total",
		Help: "Filter token resolutions by dialect and outcome.",
	}, []string{"dialect", "outcome"})
	resolutions, err := registerCounterVec(reg, resolutions, "etc_filter_resolutions_total")
	if err != nil {
		return nil, err
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "etc_filter_remote_fetch_attempts_total",
		Help: "Filter profile service requests by outcome.",
	}, []string{"outcome"})
	attempts, err = registerCounterVec(reg, attempts, "etc_filter_remote_fetch_attempts_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "etc_filter_remote_fetch_duration_seconds",
		Help:    "Latency of filter profile service requests.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"outcome"})
	duration, err = registerHistogramVec(reg, duration, "etc_filter_remote_fetch_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Resolutions:   resolutions,
		FetchAttempts: attempts,
		FetchDuration: duration,
	}, nil
}

// ObserveFetch records one remote fetch attempt.
func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchAttempts.WithLabelValues(outcome).Inc()
	m.FetchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) observeResolution(dialect, outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(dialect, outcome).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
