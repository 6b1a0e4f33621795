package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parlay_intel"

// Metrics holds every Prometheus collector the service exports
type Metrics struct {
	DropsIngested      *prometheus.CounterVec
	PoolSize           prometheus.Gauge
	ParlaysCreated     *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	Verifications      *prometheus.CounterVec
	LegChecks          *prometheus.CounterVec
	BetsTracked        *prometheus.CounterVec
	BetsUpdated        *prometheus.CounterVec
	HealthScores       *prometheus.CounterVec
	EventsPublished    *prometheus.CounterVec
	KafkaMessages      *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DropsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_ingested_total",
			Help:      "Drops processed by ingest status.",
		}, []string{"status"}),
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "opportunity_pool_size",
			Help:      "Opportunities currently in the pool.",
		}),
		ParlaysCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parlays_created_total",
			Help:      "Parlays persisted by strategy.",
		}, []string{"strategy"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of one parlay generation pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Parlay verifications by updater action.",
		}, []string{"action"}),
		LegChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leg_checks_total",
			Help:      "Verified legs by status.",
		}, []string{"status"}),
		BetsTracked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bets_tracked_total",
			Help:      "Tracked bets recorded by source kind.",
		}, []string{"source"}),
		BetsUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bets_updated_total",
			Help:      "Tracked bets updated by the background sweeps.",
		}, []string{"sweep"}),
		HealthScores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_scores_total",
			Help:      "Book health computations by level.",
		}, []string{"level"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Engine events published by result.",
		}, []string{"result"}),
		KafkaMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_messages_total",
			Help:      "Consumed Kafka messages by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.DropsIngested,
		m.PoolSize,
		m.ParlaysCreated,
		m.GenerationDuration,
		m.Verifications,
		m.LegChecks,
		m.BetsTracked,
		m.BetsUpdated,
		m.HealthScores,
		m.EventsPublished,
		m.KafkaMessages,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}
