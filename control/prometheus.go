// control/prometheus.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collector over paging pool statistics. Pull-based: the
// collector reads Stats() at scrape time, so the pool stays decoupled from
// the metrics transport.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/pagebuf/api"
)

// StatsSource is anything exposing pool statistics; *pool.Pool satisfies it.
type StatsSource interface {
	Stats() api.PoolStats
}

// PoolCollector implements prometheus.Collector for a paging pool.
type PoolCollector struct {
	src StatsSource

	pagesAllocated  *prometheus.Desc
	pagesResident   *prometheus.Desc
	pagesEvicted    *prometheus.Desc
	slotsLive       *prometheus.Desc
	bytesPagedOut   *prometheus.Desc
	bytesPagedIn    *prometheus.Desc
	prefetchHints   *prometheus.Desc
	prefetchDropped *prometheus.Desc
}

var _ prometheus.Collector = (*PoolCollector)(nil)

// NewPoolCollector builds a collector for src. Register it with a
// prometheus.Registerer to expose the metrics.
func NewPoolCollector(src StatsSource) *PoolCollector {
	ns := "pagebuf"
	return &PoolCollector{
		src: src,
		pagesAllocated: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "pages_allocated_total"),
			"Pages ever allocated by the paging pool.", nil, nil),
		pagesResident: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "pages_resident"),
			"Pages currently resident.", nil, nil),
		pagesEvicted: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "pages_evicted"),
			"Pages currently evicted to compressed snapshots.", nil, nil),
		slotsLive: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "slots_live"),
			"Slot handles held by paged-out buffers.", nil, nil),
		bytesPagedOut: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "bytes_paged_out_total"),
			"Bytes handed to the pool via PageOut.", nil, nil),
		bytesPagedIn: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "bytes_paged_in_total"),
			"Bytes restored by page-in.", nil, nil),
		prefetchHints: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "prefetch_hints_total"),
			"Residency hints accepted from non-forced reads.", nil, nil),
		prefetchDropped: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "pool", "prefetch_dropped_total"),
			"Residency hints dropped because the hint queue was full.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pagesAllocated
	ch <- c.pagesResident
	ch <- c.pagesEvicted
	ch <- c.slotsLive
	ch <- c.bytesPagedOut
	ch <- c.bytesPagedIn
	ch <- c.prefetchHints
	ch <- c.prefetchDropped
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.pagesAllocated, prometheus.CounterValue, float64(s.PagesAllocated))
	ch <- prometheus.MustNewConstMetric(c.pagesResident, prometheus.GaugeValue, float64(s.PagesResident))
	ch <- prometheus.MustNewConstMetric(c.pagesEvicted, prometheus.GaugeValue, float64(s.PagesEvicted))
	ch <- prometheus.MustNewConstMetric(c.slotsLive, prometheus.GaugeValue, float64(s.SlotsLive))
	ch <- prometheus.MustNewConstMetric(c.bytesPagedOut, prometheus.CounterValue, float64(s.BytesPagedOut))
	ch <- prometheus.MustNewConstMetric(c.bytesPagedIn, prometheus.CounterValue, float64(s.BytesPagedIn))
	ch <- prometheus.MustNewConstMetric(c.prefetchHints, prometheus.CounterValue, float64(s.PrefetchHints))
	ch <- prometheus.MustNewConstMetric(c.prefetchDropped, prometheus.CounterValue, float64(s.PrefetchDropped))
}
