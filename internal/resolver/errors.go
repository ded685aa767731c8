package resolver

import "errors"

// ReasonMalformedResponse is the failure reason for a response missing its status or body.
const ReasonMalformedResponse = "malformed response"

var ErrBodyNotObject = errors.New("response body is not a JSON object")
