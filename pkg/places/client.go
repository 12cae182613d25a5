// Package places is a client for a maps-style local business search API.
// It returns directory records (name, address, rating, review count,
// website) for a text query within a location.
package places

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/leadintel/leadscan/internal/resilience"
)

const defaultBaseURL = "https://places.leadintel-api.dev/v1"

// ErrNoResults indicates the provider found no businesses for the query.
var ErrNoResults = eris.New("places: no results")

// Business is a single directory listing.
type Business struct {
	Name        string   `json:"name"`
	Address     string   `json:"formatted_address"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"user_ratings_total,omitempty"`
	Website     string   `json:"website,omitempty"`
	Phone       string   `json:"formatted_phone_number,omitempty"`
}

// searchResponse is the wire shape of GET /search.
type searchResponse struct {
	Status  string     `json:"status"`
	Results []Business `json:"results"`
}

// Client performs business text searches.
type Client interface {
	SearchBusinesses(ctx context.Context, query, location string) ([]Business, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate (5 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a places client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchBusinesses(ctx context.Context, query, location string) ([]Business, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "places: rate limit")
		}
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("location", location)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(body))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	if result.Status == "ZERO_RESULTS" || len(result.Results) == 0 {
		return nil, ErrNoResults
	}
	if result.Status != "" && result.Status != "OK" {
		return nil, eris.Errorf("places: provider status %s", result.Status)
	}

	return result.Results, nil
}
