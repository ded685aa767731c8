package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
	"github.com/rohmanhakim/arnie-quotes/pkg/fileutil"
	"github.com/tidwall/gjson"
)

/*
FixtureFetcher answers from a canned JSON document instead of the network.

Document shape:

	{
	  "<identifier>": {"status": 200, "body": "{\"message\":\"...\"}"},
	  "<identifier>": {"error": "connection reset"},
	  "<identifier>": {"status": 200, "body": "...", "delayMs": 50}
	}

A missing "status" or "body" produces a partial Response, which lets the
malformed-envelope path be exercised end to end. "error" simulates a
transport failure and "delayMs" simulates I/O latency.
*/
type FixtureFetcher struct {
	entries map[string]gjson.Result
}

func NewFixtureFetcher(document []byte) (*FixtureFetcher, error) {
	if !gjson.ValidBytes(document) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrFixtureInvalid)
	}
	parsed := gjson.ParseBytes(document)
	if !parsed.IsObject() {
		return nil, ErrFixtureInvalid
	}

	entries := make(map[string]gjson.Result)
	parsed.ForEach(func(key, value gjson.Result) bool {
		entries[key.String()] = value
		return true
	})

	return &FixtureFetcher{
		entries: entries,
	}, nil
}

func LoadFixtureFile(path string) (*FixtureFetcher, error) {
	document, readErr := fileutil.ReadFile(path)
	if readErr != nil {
		var fileErr *fileutil.FileError
		if errors.As(readErr, &fileErr) && fileErr.Cause == fileutil.ErrCauseNotExist {
			return nil, fmt.Errorf("%w: %s", ErrFixtureFileDoesNotExist, fileErr.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrFixtureReadFail, readErr.Error())
	}
	return NewFixtureFetcher(document)
}

func (f *FixtureFetcher) Fetch(
	ctx context.Context,
	identifier string,
) (Response, failure.ClassifiedError) {
	envelope, ok := f.entries[identifier]
	if !ok {
		return Response{}, &FetchError{
			Message: fmt.Sprintf("%s: %s", ErrCauseNotInFixture, identifier),
			Cause:   ErrCauseNotInFixture,
		}
	}

	if delay := envelope.Get("delayMs"); delay.Exists() && delay.Int() > 0 {
		timer := time.NewTimer(time.Duration(delay.Int()) * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Response{}, &FetchError{
				Message: ctx.Err().Error(),
				Cause:   ErrCauseCanceled,
			}
		case <-timer.C:
		}
	}

	if simulated := envelope.Get("error"); simulated.Exists() {
		return Response{}, &FetchError{
			Message: simulated.String(),
			Cause:   ErrCauseSimulatedFailure,
		}
	}

	var statusCode *int
	if status := envelope.Get("status"); status.Type == gjson.Number {
		code := int(status.Int())
		statusCode = &code
	}

	var body *string
	if raw := envelope.Get("body"); raw.Exists() {
		text := raw.Raw
		if raw.Type == gjson.String {
			text = raw.String()
		}
		body = &text
	}

	return NewPartialResponse(statusCode, body), nil
}

// Len returns the number of identifiers the fixture knows about.
func (f *FixtureFetcher) Len() int {
	return len(f.entries)
}
