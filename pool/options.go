// File: pool/options.go
// Package pool defines functional options for Pool construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"go.uber.org/zap"

	"github.com/momentics/pagebuf/internal/normalize"
)

// Option customizes pool initialization.
type Option func(*options)

type options struct {
	pageSize      int
	prefetchDepth int
	compress      bool
	log           *zap.Logger
}

func defaultOptions() options {
	return options{
		pageSize:      normalize.PageSize(0),
		prefetchDepth: normalize.PrefetchDepth(0),
		compress:      true,
		log:           zap.NewNop(),
	}
}

// WithPageSize sets the pool page size in bytes. The value is clamped and
// rounded to a power of two; see internal/normalize.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = normalize.PageSize(n)
	}
}

// WithPrefetchDepth sets the capacity of the prefetch hint queue.
func WithPrefetchDepth(n int) Option {
	return func(o *options) {
		o.prefetchDepth = normalize.PrefetchDepth(n)
	}
}

// WithCompression toggles compression of evicted page snapshots.
// Disabled, evicted pages are kept as plain heap copies.
func WithCompression(enabled bool) Option {
	return func(o *options) {
		o.compress = enabled
	}
}

// WithLogger attaches a structured logger for page lifecycle events.
// Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
