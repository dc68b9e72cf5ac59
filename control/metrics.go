// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for paging telemetry.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/pagebuf/api"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// PublishPoolStats writes one pool stats snapshot into the registry under
// the pagebuf.pool.* keys.
func (mr *MetricsRegistry) PublishPoolStats(s api.PoolStats) {
	mr.mu.Lock()
	mr.metrics["pagebuf.pool.pages_allocated"] = s.PagesAllocated
	mr.metrics["pagebuf.pool.pages_resident"] = s.PagesResident
	mr.metrics["pagebuf.pool.pages_evicted"] = s.PagesEvicted
	mr.metrics["pagebuf.pool.slots_live"] = s.SlotsLive
	mr.metrics["pagebuf.pool.bytes_paged_out"] = s.BytesPagedOut
	mr.metrics["pagebuf.pool.bytes_paged_in"] = s.BytesPagedIn
	mr.metrics["pagebuf.pool.prefetch_hints"] = s.PrefetchHints
	mr.metrics["pagebuf.pool.prefetch_dropped"] = s.PrefetchDropped
	mr.updated = time.Now()
	mr.mu.Unlock()
}
