package events

import (
    "context"
    "time"

    "github.com/yourorg/aggregator-api/listing"
)

// SourceOutcome summarizes one adapter invocation for telemetry.
type SourceOutcome struct {
    SourceID string
    Listings int
    Error    string
    Elapsed  time.Duration
}

// SearchCompleted is emitted after every aggregation cycle. It carries only
// telemetry (counts, errors, latency), never listing payloads.
type SearchCompleted struct {
    Params  listing.Query
    Total   int
    Sources []SourceOutcome
    Elapsed time.Duration
}

type Publisher interface {
    PublishSearchCompleted(ctx context.Context, evt SearchCompleted)
    SubscribeSearchCompleted() <-chan SearchCompleted
}

type inMemory struct{ ch chan SearchCompleted }

func NewInMemory(buffer int) Publisher {
    if buffer <= 0 { buffer = 256 }
    return &inMemory{ch: make(chan SearchCompleted, buffer)}
}

// PublishSearchCompleted never blocks the request path; events are dropped
// when the buffer is saturated.
func (m *inMemory) PublishSearchCompleted(_ context.Context, evt SearchCompleted) {
    select { case m.ch <- evt: default: }
}

func (m *inMemory) SubscribeSearchCompleted() <-chan SearchCompleted { return m.ch }
