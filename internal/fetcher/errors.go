package fetcher

import (
	"errors"

	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseInvalidRequest        FetchErrorCause = "invalid request"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseNotInFixture          FetchErrorCause = "not found in fixture"
	ErrCauseSimulatedFailure      FetchErrorCause = "simulated failure"
	ErrCauseCanceled              FetchErrorCause = "canceled"
)

var (
	ErrFixtureFileDoesNotExist = errors.New("fixture file does not exist")
	ErrFixtureReadFail         = errors.New("failed to read fixture file")
	ErrFixtureInvalid          = errors.New("fixture must be a JSON object keyed by identifier")
)

// FetchError is a transport-level failure for a single identifier.
// It never aborts a batch, so its severity is always recoverable.
type FetchError struct {
	Message string
	Cause   FetchErrorCause
}

// Error returns the message alone; it becomes the failure reason shown to callers.
func (e *FetchError) Error() string {
	if e.Message == "" {
		return string(e.Cause)
	}
	return e.Message
}

func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure, ErrCauseReadResponseBodyError, ErrCauseSimulatedFailure:
		return metadata.CauseNetworkFailure
	case ErrCauseInvalidRequest:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
