package scheduler_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/config"
	"github.com/rohmanhakim/arnie-quotes/internal/fetcher"
	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/internal/quote"
	"github.com/rohmanhakim/arnie-quotes/internal/scheduler"
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

// finalizerMock is a testify mock for metadata.BatchFinalizer
type finalizerMock struct {
	mock.Mock
}

func (m *finalizerMock) RecordBatchStats(totalItems int, failedItems int, totalWindows int, duration time.Duration) {
	m.Called(totalItems, failedItems, totalWindows, duration)
}

func newMockFinalizer(t *testing.T) *finalizerMock {
	t.Helper()
	m := new(finalizerMock)
	m.On("RecordBatchStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	return m
}

func newSchedulerForTest(t *testing.T, throttleLimit int, cacheMaxSize int, f fetcher.Fetcher) scheduler.Scheduler {
	t.Helper()
	cfg, err := config.WithDefault().
		WithThrottleLimit(throttleLimit).
		WithCacheMaxSize(cacheMaxSize).
		Build()
	require.NoError(t, err)

	s, err := scheduler.NewScheduler(cfg, f, &metadata.NoopSink{}, &metadata.NoopSink{})
	require.NoError(t, err)
	return s
}

// trackingFetcher answers 200 for every identifier after a delay and
// records how many fetches overlap, plus a global sequence number for the
// start and end of each call.
type trackingFetcher struct {
	delay       time.Duration
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	sequence    atomic.Int64

	mu     sync.Mutex
	starts map[string]int64
	ends   map[string]int64
}

func newTrackingFetcher(delay time.Duration) *trackingFetcher {
	return &trackingFetcher{
		delay:  delay,
		starts: make(map[string]int64),
		ends:   make(map[string]int64),
	}
}

func (f *trackingFetcher) Fetch(ctx context.Context, identifier string) (fetcher.Response, failure.ClassifiedError) {
	f.mu.Lock()
	f.starts[identifier] = f.sequence.Add(1)
	f.mu.Unlock()

	current := f.inFlight.Add(1)
	for {
		observed := f.maxInFlight.Load()
		if current <= observed || f.maxInFlight.CompareAndSwap(observed, current) {
			break
		}
	}

	time.Sleep(f.delay)

	f.inFlight.Add(-1)
	f.mu.Lock()
	f.ends[identifier] = f.sequence.Add(1)
	f.mu.Unlock()

	return fetcher.NewResponse(200, `{"message":"`+identifier+`"}`), nil
}

// delayResolver answers Success(identifier) after a per-identifier delay,
// so completion order differs from input order.
type delayResolver struct {
	delays map[string]time.Duration
}

func (r *delayResolver) Resolve(ctx context.Context, identifier string) quote.Result {
	time.Sleep(r.delays[identifier])
	return quote.Success(identifier)
}
