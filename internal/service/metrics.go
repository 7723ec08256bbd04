package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by ranking mode and outcome.",
		},
		[]string{"mode", "status"},
	)

	searchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Search request duration in seconds by ranking mode.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	searchDegradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_degraded_total",
			Help: "Number of search requests served by the degraded in-memory path.",
		},
	)

	suggestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggest_requests_total",
			Help: "Total number of autocomplete requests by cache outcome.",
		},
		[]string{"cache"},
	)

	reindexTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "index_rebuild_total",
			Help: "Total number of index rebuilds by outcome.",
		},
		[]string{"status"},
	)

	indexDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "index_documents",
			Help: "Number of documents loaded into the text index by the last successful rebuild.",
		},
	)

	catalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the active catalog snapshot.",
		},
	)
)
