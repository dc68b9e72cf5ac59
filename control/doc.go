// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime observability for the paging subsystem: a concurrent-safe metrics
// registry, a Prometheus collector over pool statistics, and debug probes
// for state inspection.
package control
