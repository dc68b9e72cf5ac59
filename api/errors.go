// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types for the pagebuf library. Buffer-side precondition
// violations are not errors: they are fatal assertion failures (see
// internal/assert). Errors here cover pool lifecycle only.

package api

import "fmt"

var (
	// ErrPoolClosed indicates the paging pool has been shut down.
	ErrPoolClosed = fmt.Errorf("paging pool is closed")
)
