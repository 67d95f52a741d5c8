// Package metrics exposes Prometheus instruments for queries, collections and
// the recent-selections store.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "go_suggest"

var (
	registerOnce sync.Once

	queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Total number of queries by operation and result path",
	}, []string{"operation", "path"})
	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Histogram of query durations in seconds by operation",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2.5, 10), // 100µs up to ~0.4s
	}, []string{"operation"})
	queryHits = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_hits",
		Help:      "Number of hits returned per query by operation",
		Buckets:   []float64{0, 1, 3, 5, 10, 25, 50, 100},
	}, []string{"operation"})
	recentFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recent_storage_failures_total",
		Help:      "Recent-selections storage failures swallowed by the store, by operation",
	}, []string{"op"})
	datasetReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_reloads_total",
		Help:      "Dataset reloads triggered by file changes, by outcome",
	}, []string{"outcome"})
	candidatesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "candidates",
		Help:      "Current number of candidates per collection",
	}, []string{"collection"})
	collectionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "collections",
		Help:      "Current number of collections",
	})
)

// Register adds the instruments to the default registry. It is idempotent.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(queriesTotal, queryDuration, queryHits, recentFailures,
			datasetReloads, candidatesGauge, collectionsGauge)
	})
}

// ObserveQuery records one search or suggest call.
func ObserveQuery(operation, path string, hits int, d time.Duration) {
	queriesTotal.WithLabelValues(operation, path).Inc()
	queryDuration.WithLabelValues(operation).Observe(d.Seconds())
	queryHits.WithLabelValues(operation).Observe(float64(hits))
}

// IncRecentFailure counts a swallowed recent-store failure.
func IncRecentFailure(op string) { recentFailures.WithLabelValues(op).Inc() }

// IncDatasetReload counts a dataset reload with outcome "ok" or "error".
func IncDatasetReload(outcome string) { datasetReloads.WithLabelValues(outcome).Inc() }

// Gauges
func SetCandidates(collection string, n int) { candidatesGauge.WithLabelValues(collection).Set(float64(n)) }
func DeleteCandidates(collection string)     { candidatesGauge.DeleteLabelValues(collection) }
func SetCollections(n int)                   { collectionsGauge.Set(float64(n)) }
