package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Extractions counts segment extractions by outcome: "ok", "degenerate",
	// or the error kind that stopped them
	Extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postmile",
		Subsystem: "segments",
		Name:      "extractions_total",
		Help:      "Total segment extractions by outcome",
	}, []string{"outcome"})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "postmile",
		Subsystem: "segments",
		Name:      "extraction_duration_seconds",
		Help:      "Time spent selecting markers and trimming route geometry",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	ExtractedFragments = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "postmile",
		Subsystem: "segments",
		Name:      "extracted_fragments",
		Help:      "Number of fragments in extracted segments",
		Buckets:   []float64{1, 2, 3, 5, 10, 20},
	})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postmile",
		Subsystem: "segments",
		Name:      "exports_total",
		Help:      "Total files written by format",
	}, []string{"format"})

	// DatasetLoads counts reads of route files from disk by result
	DatasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postmile",
		Subsystem: "dataset",
		Name:      "loads_total",
		Help:      "Total route dataset loads from disk",
	}, []string{"result"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postmile",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"kind"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postmile",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"kind"})

	// CacheEntries is the number of cached entries by state, "fresh" or
	// "stale", as of the last cleanup pass
	CacheEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "postmile",
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Cached entries by state",
	}, []string{"state"})
)
