package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yourorg/aggregator-api/listing"
)

// DefaultSourceTimeout bounds one adapter call so a slow provider cannot
// stall the whole aggregated response. A timeout degrades into the same
// source-error outcome as an HTTP failure.
const DefaultSourceTimeout = 5 * time.Second

// fanOut invokes every adapter concurrently and joins on all of them; there
// is no early return on first failure or first success. Outcomes are written
// by index, so their order is the registry order regardless of which adapter
// finishes first.
func (e *Engine) fanOut(ctx context.Context, query listing.Query, adapters []Adapter) []Outcome {
	outcomes := make([]Outcome, len(adapters))
	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a Adapter) {
			defer wg.Done()
			outcomes[i] = e.invoke(ctx, query, a)
		}(i, a)
	}
	wg.Wait()
	return outcomes
}

func (e *Engine) invoke(ctx context.Context, query listing.Query, a Adapter) (oc Outcome) {
	oc.SourceID = a.SourceID()
	oc.DisplayName = a.DisplayName()

	if e.Quota != nil && e.Quota.Exhausted(ctx, oc.SourceID) {
		oc.Err = fmt.Errorf("%s on cooldown: %w", oc.SourceID, listing.ErrQuotaExhausted)
		return oc
	}

	start := time.Now()
	defer func() {
		oc.Elapsed = time.Since(start)
		// A panicking adapter must not take down its siblings or the request.
		if r := recover(); r != nil {
			oc.Listings = nil
			oc.Err = fmt.Errorf("%s adapter panic: %v", oc.SourceID, r)
		}
		if oc.Err != nil && errors.Is(oc.Err, listing.ErrQuotaExhausted) && e.Quota != nil {
			e.Quota.MarkExhausted(ctx, oc.SourceID)
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, e.sourceTimeout())
	defer cancel()

	oc.Listings, oc.Err = a.Search(cctx, query)
	if oc.Err != nil {
		oc.Listings = nil
	}
	return oc
}

func (e *Engine) sourceTimeout() time.Duration {
	if e.SourceTimeout > 0 {
		return e.SourceTimeout
	}
	return DefaultSourceTimeout
}
