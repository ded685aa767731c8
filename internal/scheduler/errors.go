package scheduler

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
)

var ErrInvalidArgument = errors.New("urls must be an array of strings")

// InvalidArgumentError is a caller contract violation. It aborts the whole
// call before any identifier is resolved.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidArgument, e.Message)
}

func (e *InvalidArgumentError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
