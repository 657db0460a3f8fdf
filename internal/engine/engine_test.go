package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/aggregator-api/listing"
)

type stubAdapter struct {
	id      string
	name    string
	results []listing.Listing
	err     error
	delay   time.Duration
	panics  bool
}

func (s *stubAdapter) SourceID() string    { return s.id }
func (s *stubAdapter) DisplayName() string { return s.name }

func (s *stubAdapter) Search(ctx context.Context, _ listing.Query) ([]listing.Listing, error) {
	if s.panics {
		panic("upstream shape changed")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.results, s.err
}

func mk(id, address, zip string, price int) listing.Listing {
	return listing.Listing{
		ID:         id + "-" + address,
		Address:    address,
		Zip:        zip,
		Price:      price,
		SourceName: id,
	}
}

func newTestEngine(entries ...Entry) *Engine {
	return New(NewRegistry(entries...))
}

func capeCoralQuery() listing.Query {
	return listing.Query{City: "Cape Coral", Source: SelectorAll, Limit: 20}
}

func TestSearch_PartialFailureWithCrossSourceDuplicate(t *testing.T) {
	a := &stubAdapter{id: "a", name: "Source A", results: []listing.Listing{
		mk("a", "123 Main St", "33901", 500000),
		mk("a", "77 Oak Ave", "33901", 350000),
	}}
	b := &stubAdapter{id: "b", name: "Source B", err: errors.New("upstream 502")}
	c := &stubAdapter{id: "c", name: "Source C", results: []listing.Listing{
		mk("c", "123 MAIN ST", "33901", 510000), // same property as a's
	}}
	eng := newTestEngine(Entry{a, true}, Entry{b, true}, Entry{c, true})

	res, err := eng.Search(context.Background(), capeCoralQuery())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Properties, 2)
	assert.Equal(t, []string{"Source A", "Source B", "Source C"}, res.Sources.Queried)
	assert.Equal(t, []string{"Source B"}, res.Sources.Errors)

	// Registry order decides the winner: a's record beats c's duplicate.
	for _, l := range res.Properties {
		assert.Equal(t, "a", l.SourceName)
	}
}

func TestSearch_TotalOutageStillSucceeds(t *testing.T) {
	b1 := &stubAdapter{id: "a", name: "Source A", err: errors.New("down")}
	b2 := &stubAdapter{id: "b", name: "Source B", err: errors.New("down too")}
	eng := newTestEngine(Entry{b1, true}, Entry{b2, true})

	res, err := eng.Search(context.Background(), capeCoralQuery())
	require.NoError(t, err)

	assert.True(t, res.Success, "best-effort contract: outage is not a request failure")
	assert.Empty(t, res.Properties)
	assert.NotNil(t, res.Properties, "properties must encode as [], not null")
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, []string{"Source A", "Source B"}, res.Sources.Errors)
}

func TestSearch_LimitAppliedAfterMergeAndRank(t *testing.T) {
	a := &stubAdapter{id: "a", name: "Source A", results: []listing.Listing{
		mk("a", "1 First St", "33901", 300000),
		mk("a", "2 Second St", "33901", 100000),
		mk("a", "3 Third St", "33901", 500000),
	}}
	b := &stubAdapter{id: "b", name: "Source B", results: []listing.Listing{
		mk("b", "4 Fourth St", "33901", 400000),
		mk("b", "5 Fifth St", "33901", 200000),
	}}
	eng := newTestEngine(Entry{a, true}, Entry{b, true})

	q := capeCoralQuery()
	q.Limit = 1
	res, err := eng.Search(context.Background(), q)
	require.NoError(t, err)

	// The single slot goes to the best of the merged set, not a's best.
	require.Len(t, res.Properties, 1)
	assert.Equal(t, 500000, res.Properties[0].Price)
	assert.Equal(t, 1, res.Total)
}

func TestSearch_NoLocationRejected(t *testing.T) {
	eng := newTestEngine(Entry{&stubAdapter{id: "a", name: "A"}, true})

	_, err := eng.Search(context.Background(), listing.Query{Source: SelectorAll, MinPrice: 100})
	require.ErrorIs(t, err, ErrNoLocation)
}

func TestSearch_UnknownSourceResolvesToNothing(t *testing.T) {
	// Current behavior, kept deliberately: an unrecognized selector yields an
	// empty successful envelope rather than an error.
	a := &stubAdapter{id: "a", name: "Source A", results: []listing.Listing{
		mk("a", "1 First St", "33901", 300000),
	}}
	eng := newTestEngine(Entry{a, true})

	q := capeCoralQuery()
	q.Source = "mystery"
	res, err := eng.Search(context.Background(), q)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Properties)
	assert.Empty(t, res.Sources.Queried)
	assert.Empty(t, res.Sources.Errors)
}

func TestSearch_SlowSourceTimesOutAloneAndSiblingsSurvive(t *testing.T) {
	slow := &stubAdapter{id: "slow", name: "Slow", delay: time.Second,
		results: []listing.Listing{mk("slow", "9 Late Ln", "33901", 900000)}}
	fast := &stubAdapter{id: "fast", name: "Fast",
		results: []listing.Listing{mk("fast", "1 Quick Ct", "33901", 200000)}}
	eng := New(NewRegistry(Entry{slow, true}, Entry{fast, true}),
		WithSourceTimeout(50*time.Millisecond))

	res, err := eng.Search(context.Background(), capeCoralQuery())
	require.NoError(t, err)

	assert.Equal(t, []string{"Slow"}, res.Sources.Errors)
	require.Len(t, res.Properties, 1)
	assert.Equal(t, "fast", res.Properties[0].SourceName)
}

func TestSearch_PanickingAdapterBecomesSourceError(t *testing.T) {
	bad := &stubAdapter{id: "bad", name: "Bad", panics: true}
	good := &stubAdapter{id: "good", name: "Good",
		results: []listing.Listing{mk("good", "1 Fine Pl", "33901", 100000)}}
	eng := newTestEngine(Entry{bad, true}, Entry{good, true})

	res, err := eng.Search(context.Background(), capeCoralQuery())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bad"}, res.Sources.Errors)
	assert.Len(t, res.Properties, 1)
}

type memQuota struct {
	mu        sync.Mutex
	exhausted map[string]bool
}

func (m *memQuota) Exhausted(_ context.Context, source string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exhausted[source]
}

func (m *memQuota) MarkExhausted(_ context.Context, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exhausted[source] = true
}

func TestSearch_QuotaGuardSkipsAndMarks(t *testing.T) {
	burned := &stubAdapter{id: "burned", name: "Burned",
		err: fmt.Errorf("burned: %w", listing.ErrQuotaExhausted)}
	cold := &stubAdapter{id: "cold", name: "Cold"}
	guard := &memQuota{exhausted: map[string]bool{"cold": true}}
	eng := New(NewRegistry(Entry{burned, true}, Entry{cold, true}), WithQuota(guard))

	res, err := eng.Search(context.Background(), capeCoralQuery())
	require.NoError(t, err)

	// cold was skipped up front, burned got marked for next time.
	assert.ElementsMatch(t, []string{"Burned", "Cold"}, res.Sources.Errors)
	assert.True(t, guard.Exhausted(context.Background(), "burned"))
}

func TestSearch_EnvelopeEchoesParams(t *testing.T) {
	eng := newTestEngine(Entry{&stubAdapter{id: "a", name: "A"}, true})

	q := listing.Query{City: "Cape Coral", State: "FL", MinPrice: 100000, Limit: 5, Source: "a"}
	res, err := eng.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, q, res.Params)
}
