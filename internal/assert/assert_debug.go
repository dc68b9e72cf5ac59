//go:build pagebufdebug

// File: internal/assert/assert_debug.go
// Package assert implements fatal precondition checks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Built with the pagebufdebug tag, a failed check halts the program.
// Without the tag (assert_release.go) checks compile to a branch the caller
// uses to clamp into a defined state; callers must never rely on that path.

package assert

// Enabled reports whether failed checks are fatal in this build.
const Enabled = true

// Check panics when cond is false. It returns cond so release builds can
// share call sites with a best-effort fallback branch.
func Check(cond bool, msg string) bool {
	if !cond {
		panic("pagebuf: assertion failed: " + msg)
	}
	return true
}
