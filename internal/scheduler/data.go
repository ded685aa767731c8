package scheduler

import (
	"context"

	"github.com/rohmanhakim/arnie-quotes/internal/quote"
)

// ItemResolver resolves one identifier. Implementations must never panic
// and must report every failure as a quote.Failure.
type ItemResolver interface {
	Resolve(ctx context.Context, identifier string) quote.Result
}

// window is the half-open index range [start, end) of one batch of identifiers.
type window struct {
	start int
	end   int
}

func (w window) size() int {
	return w.end - w.start
}

// partition splits n items into consecutive windows of at most size items.
// The last window may be smaller.
func partition(n int, size int) []window {
	if n == 0 {
		return nil
	}
	windows := make([]window, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		windows = append(windows, window{start: start, end: end})
	}
	return windows
}
