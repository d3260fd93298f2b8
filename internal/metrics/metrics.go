// Package metrics provides Prometheus metrics for the BookBrainz service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolverResolutionsTotal tracks entity resolutions by type and outcome
	ResolverResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookbrainz",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of entity resolutions by entity type and status",
		},
		[]string{"type", "status"},
	)

	// ResolverRedirectHops tracks how many redirects were followed per resolution
	ResolverRedirectHops = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bookbrainz",
			Subsystem: "resolver",
			Name:      "redirect_hops",
			Help:      "Number of redirect hops followed to reach a canonical BBID",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 16, 32},
		},
	)

	// DiffEntriesTotal tracks diff entries produced by kind
	DiffEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookbrainz",
			Subsystem: "diff",
			Name:      "entries_total",
			Help:      "Total number of diff entries produced by kind",
		},
		[]string{"kind"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookbrainz",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// BrokenRedirects is the number of broken redirects found by the last audit
	BrokenRedirects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bookbrainz",
			Subsystem: "jobs",
			Name:      "broken_redirects",
			Help:      "Number of cyclic or dangling redirects found by the last audit",
		},
	)
)
