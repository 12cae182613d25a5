package source

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadintel/leadscan/internal/model"
	"github.com/leadintel/leadscan/internal/resilience"
	"github.com/leadintel/leadscan/pkg/places"
)

// APISource adapts a places client to the BusinessSource capability.
type APISource struct {
	client places.Client
	retry  resilience.RetryConfig
}

// NewAPISource creates an APISource over the given places client.
func NewAPISource(client places.Client) *APISource {
	return &APISource{
		client: client,
		retry:  resilience.DefaultRetryConfig(),
	}
}

func (s *APISource) Kind() Kind { return KindAPI }

// FetchCandidates runs a "<industry> in <location>" text search and maps
// the listings to raw records.
func (s *APISource) FetchCandidates(ctx context.Context, industry, location string) ([]model.RawBusinessRecord, error) {
	retry := s.retry
	retry.OnRetry = resilience.RetryLogger("places", "search_businesses")

	listings, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]places.Business, error) {
		return s.client.SearchBusinesses(ctx, industry+" in "+location, location)
	})
	if err != nil {
		if eris.Is(err, places.ErrNoResults) {
			return nil, ErrEmpty
		}
		return nil, eris.Wrap(ErrUnavailable, err.Error())
	}

	records := make([]model.RawBusinessRecord, 0, len(listings))
	for _, b := range listings {
		records = append(records, model.RawBusinessRecord{
			Name:          b.Name,
			Address:       b.Address,
			Rating:        b.Rating,
			ReviewCount:   b.ReviewCount,
			WebsiteURL:    b.Website,
			Phone:         b.Phone,
			LocationLabel: location,
		})
	}

	zap.L().Info("api source fetched candidates",
		zap.String("industry", industry),
		zap.String("location", location),
		zap.Int("count", len(records)),
	)
	return records, nil
}
