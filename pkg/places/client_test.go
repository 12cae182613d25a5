package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadintel/leadscan/internal/resilience"
)

func newTestClient(handler http.HandlerFunc) (Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithRateLimit(0),
	)
	return client, server
}

func TestSearchBusinesses(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Dental in Austin, TX", r.URL.Query().Get("query"))
		assert.Equal(t, "Austin, TX", r.URL.Query().Get("location"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"name": "Apex Dental",
					"formatted_address": "1200 Main St, Austin, TX",
					"rating": 3.9,
					"user_ratings_total": 8,
					"website": "https://apexdental.com",
					"formatted_phone_number": "(512) 555-0134"
				},
				{"name": "Bright Smiles"}
			]
		}`))
	})
	defer server.Close()

	results, err := client.SearchBusinesses(context.Background(), "Dental in Austin, TX", "Austin, TX")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Apex Dental", results[0].Name)
	assert.Equal(t, "1200 Main St, Austin, TX", results[0].Address)
	require.NotNil(t, results[0].Rating)
	assert.InDelta(t, 3.9, *results[0].Rating, 0.001)
	require.NotNil(t, results[0].ReviewCount)
	assert.Equal(t, 8, *results[0].ReviewCount)
	assert.Nil(t, results[1].Rating)
	assert.Nil(t, results[1].ReviewCount)
}

func TestSearchBusinessesZeroResults(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer server.Close()

	_, err := client.SearchBusinesses(context.Background(), "q", "loc")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchBusinessesProviderStatusError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": [{"name": "x"}]}`))
	})
	defer server.Close()

	_, err := client.SearchBusinesses(context.Background(), "q", "loc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestSearchBusinessesTransientStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	_, err := client.SearchBusinesses(context.Background(), "q", "loc")
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestSearchBusinessesPermanentStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	_, err := client.SearchBusinesses(context.Background(), "q", "loc")
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}

func TestSearchBusinessesMalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := client.SearchBusinesses(context.Background(), "q", "loc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
