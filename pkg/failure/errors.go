package failure

import "errors"

type Severity int

// SeverityFatal aborts a whole batch; SeverityRecoverable stays inside a single item.
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityRecoverable:
		return "recoverable"
	default:
		return "unknown"
	}
}

type ClassifiedError interface {
	error
	Severity() Severity
}

// SeverityOf walks the wrap chain of err looking for a ClassifiedError.
// Unclassified errors are treated as fatal.
func SeverityOf(err error) Severity {
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Severity()
	}
	return SeverityFatal
}
