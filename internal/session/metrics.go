package session

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the tick-level instrumentation SPEC_FULL's DOMAIN STACK wires
// in: a tick-duration histogram, entity/player gauges, and a
// borrow-conflict counter. Purely observational — nothing here reads or
// writes simulation state.
//
// Unlike fight-club-go's internal/api/observability.go, which registers its
// collectors with promauto's package-level default registry, every Metrics
// here owns its own *prometheus.Registry. Package-level collectors would be
// shared mutable state across every Session in the process, which spec.md
// 5's "multiple sessions may be advanced in parallel on separate threads;
// they share no mutable state" rules out.
type Metrics struct {
	Registry *prometheus.Registry

	TickDuration    prometheus.Histogram
	EntityCount     prometheus.Gauge
	PlayerCount     prometheus.Gauge
	BorrowConflicts prometheus.Counter
}

// NewMetrics returns a Metrics with a fresh registry and every collector
// registered to it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "brawlcore_tick_duration_seconds",
			Help:    "Time spent in one session advance() call.",
			Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033},
		}),
		EntityCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brawlcore_entity_count",
			Help: "Live entity count after the most recent advance().",
		}),
		PlayerCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "brawlcore_player_count",
			Help: "Live player entity count after the most recent advance().",
		}),
		BorrowConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "brawlcore_borrow_conflicts_total",
			Help: "Scheduler borrow conflicts encountered (always fatal to the tick that hit one).",
		}),
	}
	reg.MustRegister(m.TickDuration, m.EntityCount, m.PlayerCount, m.BorrowConflicts)
	return m
}

// observeTick records one advance() call's wall-clock duration and the
// resulting entity/player counts.
func (m *Metrics) observeTick(started time.Time, entityCount, playerCount int) {
	m.TickDuration.Observe(time.Since(started).Seconds())
	m.EntityCount.Set(float64(entityCount))
	m.PlayerCount.Set(float64(playerCount))
}
