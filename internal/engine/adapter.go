package engine

import (
	"context"
	"time"

	"github.com/yourorg/aggregator-api/listing"
)

// Adapter is one registered provider capability. Implementations are
// stateless and safe for concurrent invocation by in-flight requests.
type Adapter interface {
	SourceID() string
	DisplayName() string
	Search(ctx context.Context, query listing.Query) ([]listing.Listing, error)
}

// Outcome is the per-adapter result of one fan-out. An adapter failure shows
// up as a non-nil Err with an empty Listings slice; it never aborts siblings.
type Outcome struct {
	SourceID    string
	DisplayName string
	Listings    []listing.Listing
	Err         error
	Elapsed     time.Duration
}
