package mapper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the strategy cache of an Engine.
type Metrics struct {
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheInvalidations *prometheus.CounterVec
	MappingFailures    prometheus.Counter
}

// NewMetrics creates the engine metrics, registered with reg unless it is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "object_mapper_strategy_cache_hits_total",
			Help: "Total number of strategy lookups answered from the cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "object_mapper_strategy_cache_misses_total",
			Help: "Total number of strategy lookups that scanned the strategy chain",
		}),
		CacheInvalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "object_mapper_strategy_cache_invalidations_total",
			Help: "Total number of strategy cache invalidations by scope (pair, all)",
		}, []string{"scope"}),
		MappingFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "object_mapper_mapping_failures_total",
			Help: "Total number of top level Map calls that returned an error",
		}),
	}
}

func (m *Metrics) IncrementCacheHit() {
	m.CacheHits.Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	m.CacheMisses.Inc()
}

// IncrementInvalidation records a cache reset; scope is "pair" or "all".
func (m *Metrics) IncrementInvalidation(scope string) {
	m.CacheInvalidations.WithLabelValues(scope).Inc()
}

func (m *Metrics) IncrementMappingFailure() {
	m.MappingFailures.Inc()
}
