// Package upstream holds the HTTP plumbing shared by the provider clients:
// retry policy, body size guard, and status handling. Each provider keeps its
// own request building and payload mapping.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/yourorg/aggregator-api/listing"
)

const maxBodyBytes = 4 << 20 // 4MB guard

// NewClient builds the retrying HTTP client used against every provider
// gateway. Waits are kept short so a flaky provider burns retries quickly
// instead of stalling the whole fan-out.
func NewClient() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil
	// Quota errors must reach the caller immediately, not burn retries; and
	// when retries run out we want the final status, not a "giving up" error.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc
}

// Do executes the request and returns the response body on 2xx. Non-success
// statuses become descriptive errors; 429 wraps listing.ErrQuotaExhausted so
// callers can recognize quota exhaustion with errors.Is.
func Do(rc *retryablehttp.Client, req *retryablehttp.Request, source string) ([]byte, error) {
	resp, err := rc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%s: %w", source, listing.ErrQuotaExhausted)
	}
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("%s error %d: %v", source, resp.StatusCode, body)
	}
	return readAllLimit(resp.Body, maxBodyBytes)
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
