// Package metrics exposes the pipeline's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Name:      "fetch_requests_total",
		Help:      "Statistics API requests by flow and outcome.",
	}, []string{"flow", "outcome"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tradewatch",
		Name:      "fetch_duration_seconds",
		Help:      "Wall time of a full fetch (both flows).",
		Buckets:   prometheus.DefBuckets,
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Name:      "cache_hits_total",
		Help:      "Refreshes served from the cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Name:      "cache_misses_total",
		Help:      "Refreshes that had to fetch.",
	})

	RefreshErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradewatch",
		Name:      "refresh_errors_total",
		Help:      "Failed refreshes by error kind.",
	}, []string{"kind"})
)
