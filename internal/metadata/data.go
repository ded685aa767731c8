package metadata

import (
	"time"
)

type FetchEvent struct {
	fetchUrl   string
	httpStatus int
	duration   time.Duration
}

/*
batchStats
  - Represents a terminal, derived summary of a completed FetchAll call
  - Contains only aggregate counts and durations
  - Is computed by the scheduler after the last window joined
  - Is recorded exactly once per call
  - Must not influence windowing or resolution
*/
type batchStats struct {
	totalItems   int
	failedItems  int
	totalWindows int
	durationMs   int64
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, metrics, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

Meaning:
  - The fetcher could not complete the request/response exchange.

Examples:
  - DNS resolution failures
  - Connection resets
  - Body read errors

# CauseMalformedResponse

Meaning:
  - The fetcher returned a response without a status or without a body.

# CauseContentInvalid

Meaning:
  - The body was present but could not be parsed into a quote.

# CauseUpstreamRejected

Meaning:
  - The upstream answered with a status other than 200.

# CauseInvariantViolation

Meaning:
  - A caller contract was violated.

Examples:
  - FetchAll input that is not a sequence of strings

# CauseStorageFailure

Meaning:
  - Results could not be written to the output file.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseMalformedResponse
	CauseContentInvalid
	CauseUpstreamRejected
	CauseInvariantViolation
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseMalformedResponse:
		return "malformed_response"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseUpstreamRejected:
		return "upstream_rejected"
	case CauseInvariantViolation:
		return "invariant_violation"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrMessage    AttributeKey = "message"
	AttrWindow     AttributeKey = "window"
	AttrIndex      AttributeKey = "index"
	AttrWritePath  AttributeKey = "write_path"
)
