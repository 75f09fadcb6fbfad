package cli

import (
	"errors"
	"fmt"
)

// ErrUsage matches errors caused by bad flags, arguments or profile
// lookups. Such errors exit with status 2.
var ErrUsage = errors.New("swagen: usage error")

type usageError struct {
	msg   string
	cause error
}

func newUsageError(msg string) error {
	return &usageError{msg: msg}
}

// usageErrorf formats like fmt.Errorf. A %w operand stays reachable
// through errors.Is and errors.As.
func usageErrorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &usageError{msg: err.Error(), cause: errors.Unwrap(err)}
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Unwrap() error { return e.cause }

func (e *usageError) Is(target error) bool {
	return target == ErrUsage
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}
