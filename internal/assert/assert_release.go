//go:build !pagebufdebug

// File: internal/assert/assert_release.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package assert

// Enabled reports whether failed checks are fatal in this build.
const Enabled = false

// Check reports cond; release builds never halt on a failed check.
func Check(cond bool, msg string) bool {
	return cond
}
