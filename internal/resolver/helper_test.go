package resolver_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/cache"
	"github.com/rohmanhakim/arnie-quotes/internal/fetcher"
	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(ctx context.Context, identifier string) (fetcher.Response, failure.ClassifiedError) {
	args := f.Called(ctx, identifier)
	result := args.Get(0).(fetcher.Response)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

func (f *fetcherMock) onFetch(identifier string, status int, body string) *mock.Call {
	return f.On("Fetch", mock.Anything, identifier).Return(fetcher.NewResponse(status, body), nil)
}

func (f *fetcherMock) onFetchError(identifier string, err failure.ClassifiedError) *mock.Call {
	return f.On("Fetch", mock.Anything, identifier).Return(fetcher.Response{}, err)
}

func newCacheForTest(t *testing.T, capacity int) *cache.LRUCache {
	t.Helper()
	c, err := cache.NewLRUCache(capacity)
	require.NoError(t, err)
	return c
}

// recordingSink keeps the events the resolver emits.
type recordingSink struct {
	mu           sync.Mutex
	cacheLookups []bool
	fetches      []int
	errorCauses  []metadata.ErrorCause
	errorAttrs   [][]metadata.Attribute
	resolutions  []bool
}

func (s *recordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCauses = append(s.errorCauses, cause)
	s.errorAttrs = append(s.errorAttrs, attrs)
}

func (s *recordingSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches = append(s.fetches, httpStatus)
}

func (s *recordingSink) RecordCacheLookup(key string, hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheLookups = append(s.cacheLookups, hit)
}

func (s *recordingSink) RecordResolution(identifier string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolutions = append(s.resolutions, success)
}
