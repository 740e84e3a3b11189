// Package assume implements fail-fast precondition checks for caller
// contracts at the data access level. A failed assumption is a programming
// error in the caller, not a recoverable condition, so it panics with a
// diagnostic message rather than returning an error value.
package assume

import (
	"fmt"
	"strings"
)

// nullInputMsg mirrors the contract that key parameters reaching the data
// access layer are never null/empty.
const nullInputMsg = "non-empty value expected at data access level"

// That panics with the formatted message when cond is false.
func That(cond bool, format string, args ...interface{}) {
	if !cond {
		Fail(format, args...)
	}
}

// NotEmpty panics when value is empty or whitespace-only.
func NotEmpty(name, value string) {
	if strings.TrimSpace(value) == "" {
		Fail("%s: %s", nullInputMsg, name)
	}
}

// Fail panics unconditionally with the formatted message.
func Fail(format string, args ...interface{}) {
	panic(fmt.Sprintf("assumption failed: "+format, args...))
}
