// Package engine is the multi-source listing aggregation core: it resolves a
// source selector against the registry, fans out to the provider adapters,
// and folds their outcomes into one deduped, ranked, paginated envelope.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yourorg/aggregator-api/internal/events"
	"github.com/yourorg/aggregator-api/listing"
)

// ErrNoLocation rejects queries with no geographic filter. Running adapters
// without one is undefined behavior for every provider.
var ErrNoLocation = errors.New("query needs at least one of city, state, zip")

// QuotaGuard tracks which sources have exhausted their upstream quota so the
// fan-out can skip them instead of burning requests. Implementations must be
// safe for concurrent use; a nil guard disables the feature.
type QuotaGuard interface {
	Exhausted(ctx context.Context, source string) bool
	MarkExhausted(ctx context.Context, source string)
}

// SourceReport names the sources queried and, when some failed, which ones.
type SourceReport struct {
	Queried []string `json:"queried"`
	Errors  []string `json:"errors,omitempty"`
}

// Result is the response envelope. Adapter failures never flip Success:
// even a total provider outage yields Success true with empty Properties and
// every source listed under Errors. Partial data beats all-or-nothing.
type Result struct {
	Success    bool              `json:"success"`
	Properties []listing.Listing `json:"properties"`
	Total      int               `json:"total"`
	Sources    SourceReport      `json:"sources"`
	Params     listing.Query     `json:"params"`
}

type Engine struct {
	Registry      *Registry
	Quota         QuotaGuard
	Pub           events.Publisher
	Logger        *slog.Logger
	SourceTimeout time.Duration
}

func New(reg *Registry, opts ...func(*Engine)) *Engine {
	e := &Engine{Registry: reg}
	for _, opt := range opts {
		opt(e)
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	return e
}

func WithQuota(g QuotaGuard) func(*Engine)       { return func(e *Engine) { e.Quota = g } }
func WithPublisher(p events.Publisher) func(*Engine) {
	return func(e *Engine) { e.Pub = p }
}
func WithLogger(l *slog.Logger) func(*Engine) { return func(e *Engine) { e.Logger = l } }
func WithSourceTimeout(d time.Duration) func(*Engine) {
	return func(e *Engine) { e.SourceTimeout = d }
}

// Search runs one aggregation cycle. Per-request only: nothing is cached or
// persisted, every call fans out fresh.
func (e *Engine) Search(ctx context.Context, query listing.Query) (Result, error) {
	if !query.HasLocation() {
		return Result{}, ErrNoLocation
	}

	started := time.Now()
	adapters := e.Registry.Resolve(query.Source)
	outcomes := e.fanOut(ctx, query, adapters)

	merged := Dedupe(outcomes)
	RankByPrice(merged)
	merged = Paginate(merged, query.PageSize())

	res := assemble(merged, outcomes, query)

	for _, oc := range outcomes {
		if oc.Err != nil {
			e.Logger.Warn("source failed",
				"source", oc.SourceID, "elapsed", oc.Elapsed, "err", oc.Err)
		}
	}
	e.Logger.Info("search aggregated",
		"sources", len(adapters), "failed", len(res.Sources.Errors),
		"total", res.Total, "elapsed", time.Since(started))

	if e.Pub != nil {
		e.Pub.PublishSearchCompleted(ctx, searchEvent(query, res, outcomes, time.Since(started)))
	}
	return res, nil
}

func assemble(merged []listing.Listing, outcomes []Outcome, query listing.Query) Result {
	if merged == nil {
		merged = []listing.Listing{}
	}
	rep := SourceReport{Queried: make([]string, 0, len(outcomes))}
	for _, oc := range outcomes {
		rep.Queried = append(rep.Queried, oc.DisplayName)
		if oc.Err != nil {
			rep.Errors = append(rep.Errors, oc.DisplayName)
		}
	}
	return Result{
		Success:    true,
		Properties: merged,
		Total:      len(merged),
		Sources:    rep,
		Params:     query,
	}
}

func searchEvent(query listing.Query, res Result, outcomes []Outcome, elapsed time.Duration) events.SearchCompleted {
	evt := events.SearchCompleted{
		Params:  query,
		Total:   res.Total,
		Elapsed: elapsed,
	}
	for _, oc := range outcomes {
		so := events.SourceOutcome{
			SourceID: oc.SourceID,
			Listings: len(oc.Listings),
			Elapsed:  oc.Elapsed,
		}
		if oc.Err != nil {
			so.Error = oc.Err.Error()
		}
		evt.Sources = append(evt.Sources, so)
	}
	return evt
}
