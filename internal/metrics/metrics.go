// Package metrics counts calculator activity for one session.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Session holds the collectors for a single calculator session. Each Session
// owns its registry, so independent sessions never share counts.
type Session struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	failures     *prometheus.CounterVec
	historySize  prometheus.Gauge
}

func NewSession() *Session {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Session{
		registry: reg,
		calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linecalc_calculations_total",
			Help: "Calculations computed successfully, by operation token.",
		}, []string{"operation"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linecalc_calculation_failures_total",
			Help: "Calculations that failed, by error kind.",
		}, []string{"kind"}),
		historySize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "linecalc_history_size",
			Help: "Current number of calculations in the session history.",
		}),
	}
}

// Computed records a successful calculation for the given token.
func (s *Session) Computed(token string) {
	if s == nil {
		return
	}
	s.calculations.WithLabelValues(token).Inc()
}

// Failed records a failed calculation for the given error kind code.
func (s *Session) Failed(kind string) {
	if s == nil {
		return
	}
	s.failures.WithLabelValues(kind).Inc()
}

func (s *Session) SetHistorySize(n int) {
	if s == nil {
		return
	}
	s.historySize.Set(float64(n))
}

func (s *Session) Registry() *prometheus.Registry { return s.registry }

// WriteText writes every metric family in the Prometheus text format.
func (s *Session) WriteText(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
