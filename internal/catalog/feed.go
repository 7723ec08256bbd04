package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/pkg/httpclient"
)

// FeedSource fetches the catalog as a JSON array from an HTTP endpoint.
// The fetch goes through the retrying client; a feed that stays unreachable
// after retries surfaces as ErrSourceUnavailable.
type FeedSource struct {
	url    string
	client *httpclient.Client
}

// NewFeedSource creates a catalog source fetching from the given URL.
func NewFeedSource(url string, client *httpclient.Client) *FeedSource {
	if client == nil {
		client = httpclient.New(httpclient.DefaultConfig())
	}
	return &FeedSource{url: url, client: client}
}

// Load fetches and decodes the catalog feed.
func (s *FeedSource) Load(ctx context.Context) ([]domain.Product, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch feed: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode feed: %v", ErrSourceUnavailable, err)
	}

	// Rows without an identity cannot live in the snapshot.
	valid := products[:0]
	for _, p := range products {
		if p.ID != "" {
			valid = append(valid, p)
		}
	}

	return valid, nil
}
