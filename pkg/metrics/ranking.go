package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RankingMetrics records browse/ranking behavior.
type RankingMetrics struct {
	duration      *prometheus.HistogramVec
	rankedOffers  *prometheus.CounterVec
	moqRejections prometheus.Counter
}

// NewRankingMetrics registers the ranking metrics on the provided registerer.
func NewRankingMetrics(reg prometheus.Registerer) *RankingMetrics {
	if reg == nil {
		return &RankingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ranking_duration_seconds",
		Help:    "Duration of a full ranking pass in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})
	rankedOffers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ranking_offers_total",
		Help: "Offers returned by ranking passes.",
	}, []string{"sort"})
	moqRejections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_moq_rejections_total",
		Help: "Cart mutations refused by the MOQ gate.",
	})
	reg.MustRegister(duration, rankedOffers, moqRejections)
	return &RankingMetrics{
		duration:      duration,
		rankedOffers:  rankedOffers,
		moqRejections: moqRejections,
	}
}

// ObserveRanking records the duration and result size for a ranking pass.
func (m *RankingMetrics) ObserveRanking(sort string, duration time.Duration, offers int) {
	if m == nil || m.duration == nil {
		return
	}
	label := normalizeLabel(sort)
	m.duration.WithLabelValues(label).Observe(duration.Seconds())
	m.rankedOffers.WithLabelValues(label).Add(float64(offers))
}

// IncMOQRejection counts a refused cart mutation.
func (m *RankingMetrics) IncMOQRejection() {
	if m == nil || m.moqRejections == nil {
		return
	}
	m.moqRejections.Inc()
}

func normalizeLabel(sort string) string {
	if sort == "" {
		return "unknown"
	}
	return sort
}
