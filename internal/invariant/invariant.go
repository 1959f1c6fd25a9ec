// Package invariant holds the two panic-based helpers the rest of the
// frontend uses for "can't happen" conditions — as opposed to
// expected, user-triggerable failures, which are always plain error
// returns. See DESIGN.md: entity.Table.raw and SymLink-cycle detection
// are the main callers.
package invariant

import "fmt"

// Assert panics with a formatted message if cond is false.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Must panics with err if it is non-nil, otherwise returns v. Used at
// call sites where an error return is only ever non-nil because of a
// violated internal invariant, not a user-facing failure.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
