package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/cache"
	"github.com/rohmanhakim/arnie-quotes/internal/config"
	"github.com/rohmanhakim/arnie-quotes/internal/fetcher"
	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/internal/quote"
	"github.com/rohmanhakim/arnie-quotes/internal/resolver"
	"golang.org/x/sync/errgroup"
)

/*
 Scheduler is the sole control-plane authority of a batch.

 Windowing guarantees:
 - Identifiers are split into consecutive windows of throttleLimit items.
 - Every identifier of a window is resolved concurrently.
 - The next window starts only after every resolution of the current one
   returned, so at most throttleLimit resolutions are in flight at once.
   A freed slot is not refilled until the whole window joins.
 - Results are stored by position, never by completion order.

 Failure guarantees:
 - Per-item failures are quote.Failure values and never abort a batch.
 - Only input validation (FetchAllValues) can abort, and it does so before
   any resolution starts.

 There is no per-window timeout. A stuck fetch holds its window until the
 fetcher itself gives up.
*/
type Scheduler struct {
	metadataSink   metadata.MetadataSink
	batchFinalizer metadata.BatchFinalizer
	resolver       ItemResolver
	cache          *cache.LRUCache
	throttleLimit  int
}

// NewScheduler wires a Scheduler that owns its own LRU cache sized by cfg.
// Schedulers built separately never share cached quotes.
func NewScheduler(
	cfg config.Config,
	f fetcher.Fetcher,
	batchFinalizer metadata.BatchFinalizer,
	metadataSink metadata.MetadataSink,
) (Scheduler, error) {
	quoteCache, err := cache.NewLRUCache(cfg.CacheMaxSize())
	if err != nil {
		return Scheduler{}, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}
	if cfg.ThrottleLimit() <= 0 {
		return Scheduler{}, fmt.Errorf("%w: throttleLimit must be greater than zero", config.ErrInvalidConfig)
	}
	return Scheduler{
		metadataSink:   metadataSink,
		batchFinalizer: batchFinalizer,
		resolver:       resolver.NewResolver(f, quoteCache, metadataSink),
		cache:          quoteCache,
		throttleLimit:  cfg.ThrottleLimit(),
	}, nil
}

// NewSchedulerWithDeps creates a Scheduler with an injected resolver for testing.
// A throttleLimit below one is treated as one.
func NewSchedulerWithDeps(
	throttleLimit int,
	itemResolver ItemResolver,
	batchFinalizer metadata.BatchFinalizer,
	metadataSink metadata.MetadataSink,
) Scheduler {
	if throttleLimit < 1 {
		throttleLimit = 1
	}
	return Scheduler{
		metadataSink:   metadataSink,
		batchFinalizer: batchFinalizer,
		resolver:       itemResolver,
		throttleLimit:  throttleLimit,
	}
}

// FetchAll resolves every identifier and returns one result per identifier,
// in input order.
func (s *Scheduler) FetchAll(ctx context.Context, identifiers []string) []quote.Result {
	startTime := time.Now()
	results := make([]quote.Result, len(identifiers))

	windows := partition(len(identifiers), s.throttleLimit)
	for _, w := range windows {
		s.runWindow(ctx, identifiers, w, results)
	}

	failed := 0
	for _, result := range results {
		if result.IsFailure() {
			failed++
		}
	}
	s.batchFinalizer.RecordBatchStats(len(identifiers), failed, len(windows), time.Since(startTime))

	return results
}

// FetchAllValues validates untyped input (decoded JSON, input files) before
// delegating to FetchAll. Invalid input returns an *InvalidArgumentError and
// no identifier is resolved.
func (s *Scheduler) FetchAllValues(ctx context.Context, input any) ([]quote.Result, error) {
	identifiers, err := ValidateIdentifiers(input)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"scheduler",
			"Scheduler.FetchAllValues",
			metadata.CauseInvariantViolation,
			err.Error(),
			nil,
		)
		return nil, err
	}
	return s.FetchAll(ctx, identifiers), nil
}

func (s *Scheduler) runWindow(ctx context.Context, identifiers []string, w window, results []quote.Result) {
	var group errgroup.Group
	for i := w.start; i < w.end; i++ {
		i := i
		group.Go(func() error {
			results[i] = s.resolver.Resolve(ctx, identifiers[i])
			return nil
		})
	}
	// Resolve never fails, so the group error is always nil.
	_ = group.Wait()
}

// ThrottleLimit returns the window size.
func (s *Scheduler) ThrottleLimit() int {
	return s.throttleLimit
}

// CachedCount returns the number of quotes held by the scheduler's own cache,
// or 0 when the resolver was injected.
func (s *Scheduler) CachedCount() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Size()
}
