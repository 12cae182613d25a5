package source

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadintel/leadscan/pkg/places"
)

// stubPlacesClient returns canned listings or a canned error.
type stubPlacesClient struct {
	listings []places.Business
	err      error
	gotQuery string
}

func (s *stubPlacesClient) SearchBusinesses(_ context.Context, query, _ string) ([]places.Business, error) {
	s.gotQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

func TestAPISourceFetchCandidates(t *testing.T) {
	rating := 4.1
	reviews := 33
	client := &stubPlacesClient{listings: []places.Business{
		{
			Name:        "Apex Dental",
			Address:     "1200 Main St, Austin, TX",
			Rating:      &rating,
			ReviewCount: &reviews,
			Website:     "https://apexdental.com",
			Phone:       "(512) 555-0134",
		},
		{Name: "Bright Smiles"},
	}}
	src := NewAPISource(client)

	records, err := src.FetchCandidates(context.Background(), "Dental", "Austin, TX")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Dental in Austin, TX", client.gotQuery)
	assert.Equal(t, "Apex Dental", records[0].Name)
	assert.Equal(t, "1200 Main St, Austin, TX", records[0].Address)
	require.NotNil(t, records[0].Rating)
	assert.InDelta(t, 4.1, *records[0].Rating, 0.001)
	assert.Equal(t, "https://apexdental.com", records[0].WebsiteURL)
	assert.Equal(t, "Austin, TX", records[0].LocationLabel)
	assert.Nil(t, records[1].Rating, "absent fields stay absent")
}

func TestAPISourceMapsNoResultsToEmpty(t *testing.T) {
	src := NewAPISource(&stubPlacesClient{err: places.ErrNoResults})

	_, err := src.FetchCandidates(context.Background(), "Dental", "Austin, TX")
	assert.True(t, eris.Is(err, ErrEmpty))
}

func TestAPISourceMapsFailureToUnavailable(t *testing.T) {
	src := NewAPISource(&stubPlacesClient{err: eris.New("places: unexpected status 403")})

	_, err := src.FetchCandidates(context.Background(), "Dental", "Austin, TX")
	assert.True(t, eris.Is(err, ErrUnavailable))
}

func TestAPISourceKind(t *testing.T) {
	assert.Equal(t, KindAPI, NewAPISource(&stubPlacesClient{}).Kind())
}
