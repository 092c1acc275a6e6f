package meta

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheEntriesDesc = prometheus.NewDesc(
		"ustring_pattern_cache_entries",
		"Compiled patterns held per cache.",
		[]string{"cache"}, nil,
	)
	cacheHitsDesc = prometheus.NewDesc(
		"ustring_pattern_cache_hits_total",
		"Pattern cache lookups served from the cache.",
		[]string{"cache"}, nil,
	)
	cacheMissesDesc = prometheus.NewDesc(
		"ustring_pattern_cache_misses_total",
		"Pattern cache lookups that compiled the pattern.",
		[]string{"cache"}, nil,
	)
)

// Collector exports the cache statistics to Prometheus.
func (c *Cache) Collector() prometheus.Collector {
	return NewCollector(func() *Cache { return c })
}

// NewCollector exports the statistics of whichever cache current returns
// at collection time. A nil cache exports nothing.
func NewCollector(current func() *Cache) prometheus.Collector {
	return &cacheCollector{current: current}
}

type cacheCollector struct {
	current func() *Cache
}

func (cc *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheEntriesDesc
	ch <- cacheHitsDesc
	ch <- cacheMissesDesc
}

func (cc *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	cache := cc.current()
	if cache == nil {
		return
	}
	for _, s := range cache.Stats() {
		ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(s.Size), s.Name)
		ch <- prometheus.MustNewConstMetric(cacheHitsDesc, prometheus.CounterValue, float64(s.Hits), s.Name)
		ch <- prometheus.MustNewConstMetric(cacheMissesDesc, prometheus.CounterValue, float64(s.Misses), s.Name)
	}
}
