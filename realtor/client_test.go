package realtor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/aggregator-api/listing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.baseURL = srv.URL
	c.http.RetryMax = 0 // keep failure tests fast
	return c
}

func TestSearch_BuildsProviderParams(t *testing.T) {
	var gotURL string
	var gotKey, gotHost string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		w.Write([]byte(`{"properties": []}`))
	})

	_, err := c.Search(context.Background(), listing.Query{
		City: "Cape Coral", State: "FL", ZipCode: "33901",
		MinPrice: 200000, MaxPrice: 800000, MinBeds: 3, MinBaths: 2, Limit: 10,
	})
	require.NoError(t, err)

	assert.Contains(t, gotURL, "/search/forsale")
	assert.Contains(t, gotURL, "city=Cape+Coral")
	assert.Contains(t, gotURL, "state_code=FL")
	assert.Contains(t, gotURL, "postal_code=33901")
	assert.Contains(t, gotURL, "price_min=200000")
	assert.Contains(t, gotURL, "price_max=800000")
	assert.Contains(t, gotURL, "beds_min=3")
	assert.Contains(t, gotURL, "baths_min=2")
	assert.Contains(t, gotURL, "limit=10")
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, hostHeader, gotHost)
}

func TestSearch_QuotaStatusMapsToSentinel(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), listing.Query{City: "Cape Coral"})
	require.ErrorIs(t, err, listing.ErrQuotaExhausted)
}

func TestSearch_UpstreamErrorIsDescriptive(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message": "backend sad"}`))
	})

	got, err := c.Search(context.Background(), listing.Query{City: "Cape Coral"})
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Contains(t, err.Error(), "realtor error 502")
}

func TestSearch_MapsPayload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": [{"property_id": "1", "list_price": 250000,
		  "location": {"address": {"line": "1 A St", "city": "Cape Coral", "state_code": "FL", "postal_code": "33901"}}}]}`))
	})

	got, err := c.Search(context.Background(), listing.Query{City: "Cape Coral"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "realtor-1", got[0].ID)
	assert.Equal(t, 250000, got[0].Price)
}
