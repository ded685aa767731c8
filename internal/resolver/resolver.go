package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/cache"
	"github.com/rohmanhakim/arnie-quotes/internal/fetcher"
	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/internal/quote"
	"golang.org/x/sync/singleflight"
)

/*
Resolver turns one identifier into a quote.Result.

Resolution order:
 1. Cache hit returns the cached Success without calling the fetcher.
 2. On a miss, concurrent resolutions of the same identifier share a single
    fetch. The cache is checked again inside the shared flight, so an
    identifier that completed an instant earlier is not fetched twice.
 3. Transport error, missing status or body, unparsable body and any status
    other than 200 all become a Failure.
 4. A 200 becomes a Success and is cached before it is returned.

Resolve never returns an error and never panics because of the fetcher.
Failures are never cached; the next resolution of a failed identifier fetches again.
*/
type Resolver struct {
	fetcher      fetcher.Fetcher
	cache        cache.Cache
	metadataSink metadata.MetadataSink
	flights      *singleflight.Group
}

func NewResolver(
	f fetcher.Fetcher,
	c cache.Cache,
	metadataSink metadata.MetadataSink,
) *Resolver {
	return &Resolver{
		fetcher:      f,
		cache:        c,
		metadataSink: metadataSink,
		flights:      &singleflight.Group{},
	}
}

func (r *Resolver) Resolve(ctx context.Context, identifier string) quote.Result {
	result := r.resolve(ctx, identifier)
	r.metadataSink.RecordResolution(identifier, result.IsSuccess())
	return result
}

func (r *Resolver) resolve(ctx context.Context, identifier string) quote.Result {
	value, hit := r.cache.Get(identifier)
	r.metadataSink.RecordCacheLookup(identifier, hit)
	if hit {
		return quote.Success(value)
	}

	shared, _, _ := r.flights.Do(identifier, func() (any, error) {
		if value, hit := r.cache.Get(identifier); hit {
			return quote.Success(value), nil
		}
		return r.fetchAndStore(ctx, identifier), nil
	})
	return shared.(quote.Result)
}

func (r *Resolver) fetchAndStore(ctx context.Context, identifier string) (result quote.Result) {
	callerMethod := "Resolver.Resolve"

	defer func() {
		if p := recover(); p != nil {
			reason := fmt.Sprintf("fetcher panicked: %v", p)
			r.recordFailure(callerMethod, identifier, metadata.CauseUnknown, reason, nil)
			result = quote.Failure(reason)
		}
	}()

	startTime := time.Now()
	resp, err := r.fetcher.Fetch(ctx, identifier)
	duration := time.Since(startTime)

	if err != nil {
		r.metadataSink.RecordFetch(identifier, 0, duration)
		r.recordFailure(callerMethod, identifier, metadata.CauseNetworkFailure, err.Error(), nil)
		return quote.Failure(err.Error())
	}
	r.metadataSink.RecordFetch(identifier, resp.StatusCode(), duration)

	if !resp.Complete() {
		r.recordFailure(callerMethod, identifier, metadata.CauseMalformedResponse, ReasonMalformedResponse, nil)
		return quote.Failure(ReasonMalformedResponse)
	}

	message, parseErr := parseMessage(resp.Body())
	if parseErr != nil {
		r.recordFailure(callerMethod, identifier, metadata.CauseContentInvalid, parseErr.Error(), nil)
		return quote.Failure(parseErr.Error())
	}

	// The upstream's own message doubles as the failure reason.
	if resp.StatusCode() != http.StatusOK {
		r.recordFailure(
			callerMethod,
			identifier,
			metadata.CauseUpstreamRejected,
			message,
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(resp.StatusCode())),
			},
		)
		return quote.Failure(message)
	}

	r.cache.Put(identifier, message)
	return quote.Success(message)
}

func (r *Resolver) recordFailure(
	callerMethod string,
	identifier string,
	cause metadata.ErrorCause,
	details string,
	extra []metadata.Attribute,
) {
	attrs := append([]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, identifier)}, extra...)
	r.metadataSink.RecordError(
		time.Now(),
		"resolver",
		callerMethod,
		cause,
		details,
		attrs,
	)
}
