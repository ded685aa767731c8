package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
)

/*
Responsibilities

- Perform one HTTP GET per identifier
- Return the status code and body verbatim

Fetch Semantics

- Every status code is a successful exchange at this layer
- Only transport failures become FetchError
- No retries, no custom headers, no redirect policy beyond net/http defaults

The fetcher never parses content; it only returns the body and status.
*/

type HTTPFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout leaves requests unbounded.
func NewHTTPFetcher(
	metadataSink metadata.MetadataSink,
	timeout time.Duration,
) HTTPFetcher {
	return HTTPFetcher{
		metadataSink: metadataSink,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (h *HTTPFetcher) Fetch(
	ctx context.Context,
	identifier string,
) (Response, failure.ClassifiedError) {
	callerMethod := "HTTPFetcher.Fetch"

	result, err := h.performFetch(ctx, identifier)
	if err != nil {
		h.recordFetchError(callerMethod, identifier, err)
		return Response{}, err
	}
	return result, nil
}

func (h *HTTPFetcher) recordFetchError(callerMethod string, identifier string, err failure.ClassifiedError) {
	var fetchError *FetchError
	if errors.As(err, &fetchError) {
		h.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			mapFetchErrorToMetadataCause(fetchError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, identifier),
			},
		)
	}
}

func (h *HTTPFetcher) performFetch(ctx context.Context, identifier string) (Response, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, identifier, nil)
	if err != nil {
		return Response{}, &FetchError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   ErrCauseInvalidRequest,
		}
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Response{}, &FetchError{
			Message: fmt.Sprintf("request failed: %v", err),
			Cause:   ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &FetchError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Cause:   ErrCauseReadResponseBodyError,
		}
	}

	return NewResponse(resp.StatusCode, string(body)), nil
}
