package fetcher

import (
	"context"

	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
)

// Fetcher performs the request/response exchange for one identifier.
//
// A Fetcher reports transport failures only. Status codes and bodies are
// returned verbatim; interpreting them is the resolver's job.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (Response, failure.ClassifiedError)
}
