// Package zillow adapts the RapidAPI Zillow search product to the canonical
// listing model. Zillow returns flat records and, unlike Realtor, takes a
// plain "state" parameter.
package zillow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/yourorg/aggregator-api/internal/upstream"
	"github.com/yourorg/aggregator-api/listing"
)

const (
	sourceID    = "zillow"
	displayName = "Zillow"
	hostHeader  = "zillow56.p.rapidapi.com"
)

type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		key:     apiKey,
		baseURL: "https://" + hostHeader,
		http:    upstream.NewClient(),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

func (c *Client) SourceID() string    { return sourceID }
func (c *Client) DisplayName() string { return displayName }

// Search runs one for-sale search.
func (c *Client) Search(ctx context.Context, query listing.Query) ([]listing.Listing, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("status", "forSale")
	if query.City != "" {
		q.Set("city", query.City)
	}
	if query.State != "" {
		q.Set("state", query.State)
	}
	if query.ZipCode != "" {
		q.Set("zip", query.ZipCode)
	}
	if query.MinPrice > 0 {
		q.Set("minPrice", fmt.Sprintf("%d", query.MinPrice))
	}
	if query.MaxPrice > 0 {
		q.Set("maxPrice", fmt.Sprintf("%d", query.MaxPrice))
	}
	if query.MinBeds > 0 {
		q.Set("beds", fmt.Sprintf("%d", query.MinBeds))
	}
	if query.MinBaths > 0 {
		q.Set("baths", fmt.Sprintf("%d", query.MinBaths))
	}
	q.Set("resultsPerPage", fmt.Sprintf("%d", query.PageSize()))

	u := fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", hostHeader)

	raw, err := upstream.Do(c.http, req, sourceID)
	if err != nil {
		return nil, err
	}
	return mapPayload(raw)
}
