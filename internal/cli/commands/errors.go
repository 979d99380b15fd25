package commands

import "fmt"

// UsageError marks an invocation mistake: an unknown rule, a fix request for
// a check-only rule, malformed flags. The CLI maps it to exit code 2, keeping
// it distinct from validation failures (exit code 1).
type UsageError struct {
	msg string
}

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.msg
}
