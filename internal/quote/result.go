package quote

import (
	"encoding/json"
	"fmt"
)

/*
Result is the outcome of resolving one identifier.

Exactly one variant is populated:
  - Success carries the resolved quote text
  - Failure carries a human-readable reason

The zero value is a Success with an empty quote; use the constructors.
*/
type Result struct {
	kind Kind
	text string
}

func Success(value string) Result {
	return Result{kind: KindSuccess, text: value}
}

func Failure(reason string) Result {
	if reason == "" {
		reason = UnknownErrorReason
	}
	return Result{kind: KindFailure, text: reason}
}

func (r Result) Kind() Kind {
	return r.kind
}

func (r Result) IsSuccess() bool {
	return r.kind == KindSuccess
}

func (r Result) IsFailure() bool {
	return r.kind == KindFailure
}

// Value returns the quote text, or "" for a Failure.
func (r Result) Value() string {
	if r.kind != KindSuccess {
		return ""
	}
	return r.text
}

// Reason returns the failure reason, or "" for a Success.
func (r Result) Reason() string {
	if r.kind != KindFailure {
		return ""
	}
	return r.text
}

func (r Result) String() string {
	return fmt.Sprintf("%s(%q)", r.kind, r.text)
}

func (r Result) MarshalJSON() ([]byte, error) {
	key := SuccessKey
	if r.kind == KindFailure {
		key = FailureKey
	}
	return json.Marshal(map[string]string{key: r.text})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidResultShape, err.Error())
	}
	if len(raw) != 1 {
		return fmt.Errorf("%w: got %d keys", ErrInvalidResultShape, len(raw))
	}
	if value, ok := raw[SuccessKey]; ok {
		*r = Success(value)
		return nil
	}
	if reason, ok := raw[FailureKey]; ok {
		*r = Failure(reason)
		return nil
	}
	return ErrInvalidResultShape
}
