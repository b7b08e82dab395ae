// control/prometheus.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus bridge for pool statistics. The collector pulls live counters
// from a Registry on scrape; nothing is pushed from pool hot paths.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	descCapacity = prometheus.NewDesc(
		"hioload_buf_pool_capacity_tokens",
		"Fixed token count of the pool.",
		[]string{"pool"}, nil)
	descAvailable = prometheus.NewDesc(
		"hioload_buf_pool_available_tokens",
		"Tokens currently in the free set.",
		[]string{"pool"}, nil)
	descTokenBytes = prometheus.NewDesc(
		"hioload_buf_pool_token_bytes",
		"Byte capacity of one token.",
		[]string{"pool"}, nil)
	descAcquires = prometheus.NewDesc(
		"hioload_buf_pool_acquires_total",
		"Successful token checkouts.",
		[]string{"pool"}, nil)
	descOverflows = prometheus.NewDesc(
		"hioload_buf_pool_overflows_total",
		"Non-blocking acquires rejected on an exhausted pool.",
		[]string{"pool"}, nil)
	descTimeouts = prometheus.NewDesc(
		"hioload_buf_pool_acquire_timeouts_total",
		"Blocking acquires that waited out their deadline.",
		[]string{"pool"}, nil)
	descReturns = prometheus.NewDesc(
		"hioload_buf_pool_returns_total",
		"Tokens recycled into the free set.",
		[]string{"pool"}, nil)
	descFreed = prometheus.NewDesc(
		"hioload_buf_pool_freed_total",
		"Tokens released to memory after pool close.",
		[]string{"pool"}, nil)
)

// PoolCollector exports a Registry's pool statistics as prometheus metrics.
type PoolCollector struct {
	registry *Registry
}

// NewPoolCollector wraps a stats registry for prometheus scraping.
func NewPoolCollector(registry *Registry) *PoolCollector {
	return &PoolCollector{registry: registry}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descCapacity
	ch <- descAvailable
	ch <- descTokenBytes
	ch <- descAcquires
	ch <- descOverflows
	ch <- descTimeouts
	ch <- descReturns
	ch <- descFreed
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	for name, s := range c.registry.Snapshot() {
		ch <- prometheus.MustNewConstMetric(descCapacity, prometheus.GaugeValue, float64(s.Capacity), name)
		ch <- prometheus.MustNewConstMetric(descAvailable, prometheus.GaugeValue, float64(s.Available), name)
		ch <- prometheus.MustNewConstMetric(descTokenBytes, prometheus.GaugeValue, float64(s.TokenBytes), name)
		ch <- prometheus.MustNewConstMetric(descAcquires, prometheus.CounterValue, float64(s.Acquires), name)
		ch <- prometheus.MustNewConstMetric(descOverflows, prometheus.CounterValue, float64(s.Overflows), name)
		ch <- prometheus.MustNewConstMetric(descTimeouts, prometheus.CounterValue, float64(s.Timeouts), name)
		ch <- prometheus.MustNewConstMetric(descReturns, prometheus.CounterValue, float64(s.Returns), name)
		ch <- prometheus.MustNewConstMetric(descFreed, prometheus.CounterValue, float64(s.Freed), name)
	}
}

var _ prometheus.Collector = (*PoolCollector)(nil)
