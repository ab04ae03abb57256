package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paylock"

// Ledger holds the collectors exported by the unlock ledger. A nil *Ledger is valid and records nothing.
type Ledger struct {
	registry       *prometheus.Registry
	unlocks        *prometheus.CounterVec
	replays        *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	seatsClaimed   prometheus.Counter
	downgrades     prometheus.Counter
	revenue        *prometheus.CounterVec
	commitDuration prometheus.Histogram
}

func NewLedger() *Ledger {
	registry := prometheus.NewRegistry()
	m := &Ledger{
		registry: registry,
		unlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlocks_total",
			Help:      "First-time unlocks committed, by access kind and price tier.",
		}, []string{"access_kind", "tier"}),
		replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlock_replays_total",
			Help:      "Unlock attempts answered without a write (already unlocked, free, owner).",
		}, []string{"tier"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlock_rejections_total",
			Help:      "Unlock attempts rejected, by error kind.",
		}, []string{"kind"}),
		seatsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investor_seats_claimed_total",
			Help:      "Investor seats allocated.",
		}),
		downgrades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buyout_downgrades_total",
			Help:      "Buyout attempts downgraded to the standard tier because seats filled up.",
		}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_micro_usd_total",
			Help:      "Revenue split applied at unlock time in micro-USD, by party.",
		}, []string{"party"}),
		commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unlock_commit_duration_seconds",
			Help:      "Duration of the per-post unlock transaction.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	registry.MustRegister(
		m.unlocks,
		m.replays,
		m.rejections,
		m.seatsClaimed,
		m.downgrades,
		m.revenue,
		m.commitDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Ledger) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Ledger) ObserveUnlock(accessKind, tier string) {
	if m == nil {
		return
	}
	m.unlocks.WithLabelValues(accessKind, tier).Inc()
}

func (m *Ledger) ObserveReplay(tier string) {
	if m == nil {
		return
	}
	m.replays.WithLabelValues(tier).Inc()
}

func (m *Ledger) ObserveRejection(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "internal"
	}
	m.rejections.WithLabelValues(kind).Inc()
}

func (m *Ledger) ObserveSeatClaimed() {
	if m == nil {
		return
	}
	m.seatsClaimed.Inc()
}

func (m *Ledger) ObserveDowngrade() {
	if m == nil {
		return
	}
	m.downgrades.Inc()
}

func (m *Ledger) ObserveRevenue(platform, investors, creator int64) {
	if m == nil {
		return
	}
	m.revenue.WithLabelValues("platform").Add(float64(platform))
	m.revenue.WithLabelValues("investors").Add(float64(investors))
	m.revenue.WithLabelValues("creator").Add(float64(creator))
}

func (m *Ledger) ObserveCommit(seconds float64) {
	if m == nil {
		return
	}
	m.commitDuration.Observe(seconds)
}
