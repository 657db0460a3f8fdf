// Package redfin adapts the RapidAPI Redfin search product. Unlike the other
// providers it takes a POST body and wraps most numeric fields in
// {"value": ...} envelopes.
package redfin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/yourorg/aggregator-api/internal/upstream"
	"github.com/yourorg/aggregator-api/listing"
)

const (
	sourceID    = "redfin"
	displayName = "Redfin"
	hostHeader  = "redfin-base.p.rapidapi.com"
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

type searchBody struct {
	Region struct {
		City  string `json:"city,omitempty"`
		State string `json:"state,omitempty"`
		Zip   string `json:"zip,omitempty"`
	} `json:"region"`
	Filters struct {
		MinPrice int `json:"min_price,omitempty"`
		MaxPrice int `json:"max_price,omitempty"`
		MinBeds  int `json:"min_beds,omitempty"`
		MinBaths int `json:"min_baths,omitempty"`
	} `json:"filters"`
	NumHomes int `json:"num_homes"`
}

// Search runs one for-sale search against the POST endpoint.
func (c *Client) Search(ctx context.Context, query listing.Query) ([]listing.Listing, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body searchBody
	body.Region.City = query.City
	body.Region.State = query.State
	body.Region.Zip = query.ZipCode
	body.Filters.MinPrice = query.MinPrice
	body.Filters.MaxPrice = query.MaxPrice
	body.Filters.MinBeds = query.MinBeds
	body.Filters.MinBaths = query.MinBaths
	body.NumHomes = query.PageSize()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search/sale", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", hostHeader)

	raw, err := upstream.Do(c.http, req, sourceID)
	if err != nil {
		return nil, err
	}
	return mapPayload(raw)
}
