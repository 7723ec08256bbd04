package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/index"
	"github.com/utafrali/SearchGo/internal/index/memory"
	apperrors "github.com/utafrali/SearchGo/pkg/errors"
	"github.com/utafrali/SearchGo/pkg/logger"
)

func fptr(v float64) *float64 { return &v }

type stubSource struct {
	products []domain.Product
}

func (s *stubSource) Load(context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func testLogger() *slog.Logger {
	return logger.NewWithWriter("test", "error", io.Discard)
}

func catalogProductsFixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Samsung Galaxy S21", CategoryLevel1: "Elektronik", CategoryLevel2: "Telefon", CategoryLeaf: "Akıllı Telefon", SellingPrice: 200, ReviewCount: 500, AverageRating: fptr(4.5)},
		{ID: "p2", Title: "Samsung Kulaklık", CategoryLevel1: "Elektronik", CategoryLevel2: "Kulaklık", SellingPrice: 80, ReviewCount: 200, AverageRating: fptr(4.1)},
		{ID: "p3", Title: "iPhone 13", CategoryLevel1: "Elektronik", CategoryLevel2: "Telefon", CategoryLeaf: "Akıllı Telefon", SellingPrice: 900, ReviewCount: 800, AverageRating: fptr(4.7)},
		{ID: "p4", Title: "Lorem Ipsum", CategoryLevel1: "Moda", CategoryLevel2: "Giyim", CategoryLeaf: "Tişört", OriginalPrice: 100, SellingPrice: 50, ReviewCount: 40},
	}
}

// newTestService builds a service over the fixture catalog with an in-memory
// index, refreshed and reindexed.
func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()

	store := catalog.NewStore(&stubSource{products: catalogProductsFixture()}, testLogger())
	idx := index.NewFailover(memory.New(), index.NewFallbackScan(store), testLogger())
	svc := New(store, idx, nil, opts, testLogger())

	_, err := svc.RefreshCatalog(context.Background())
	require.NoError(t, err)
	_, err = svc.Reindex(context.Background())
	require.NoError(t, err)
	return svc
}

func emptyService(t *testing.T) *Service {
	t.Helper()
	store := catalog.NewStore(&stubSource{}, testLogger())
	idx := index.NewFailover(memory.New(), index.NewFallbackScan(store), testLogger())
	return New(store, idx, nil, Options{}, testLogger())
}

func resultIDs(res *domain.SearchResult) []string {
	out := make([]string, 0, len(res.Products))
	for _, p := range res.Products {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchDefaultsToStructured(t *testing.T) {
	svc := newTestService(t, Options{})

	res, err := svc.Search(context.Background(), domain.SearchQuery{Text: "sam"})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeStructured, res.Mode)
	assert.Equal(t, []string{"p1", "p2"}, resultIDs(res))
	assert.Equal(t, 2, res.Total)
	assert.False(t, res.Degraded)
}

func TestSearchSimilarityMode(t *testing.T) {
	svc := newTestService(t, Options{})

	res, err := svc.Search(context.Background(), domain.SearchQuery{Text: "samsung", Mode: domain.ModeSimilarity})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSimilarity, res.Mode)
	assert.Contains(t, resultIDs(res), "p1")
}

func TestSearchLimitDefaultAndClamp(t *testing.T) {
	svc := newTestService(t, Options{DefaultLimit: 2, MaxLimit: 3})

	res, err := svc.Search(context.Background(), domain.SearchQuery{})
	require.NoError(t, err)
	assert.Len(t, res.Products, 2)

	res, err = svc.Search(context.Background(), domain.SearchQuery{Limit: 999})
	require.NoError(t, err)
	assert.Len(t, res.Products, 3)
}

func TestSearchInvalidInputs(t *testing.T) {
	svc := newTestService(t, Options{})

	cases := []domain.SearchQuery{
		{Limit: -1},
		{Mode: "fuzzy"},
		{Filters: domain.FilterSet{MinPrice: fptr(-1)}},
		{Filters: domain.FilterSet{MaxPrice: fptr(-5)}},
		{Filters: domain.FilterSet{MinPrice: fptr(100), MaxPrice: fptr(10)}},
		{Filters: domain.FilterSet{MinRating: fptr(6)}},
	}
	for _, q := range cases {
		_, err := svc.Search(context.Background(), q)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "query %+v", q)
	}
}

func TestSearchFilterUnion(t *testing.T) {
	svc := newTestService(t, Options{})

	res, err := svc.Search(context.Background(), domain.SearchQuery{
		Filters: domain.FilterSet{CategoryLevel2: []string{"Giyim", "Kulaklık"}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p2", "p4"}, resultIDs(res))
}

func TestSearchBeforeCatalogLoadUnavailable(t *testing.T) {
	svc := emptyService(t)

	_, err := svc.Search(context.Background(), domain.SearchQuery{Text: "sam"})
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestSearchServesPlaceholderRewrites(t *testing.T) {
	svc := newTestService(t, Options{})

	res, err := svc.Search(context.Background(), domain.SearchQuery{
		Filters: domain.FilterSet{CategoryLevel2: []string{"Giyim"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)

	// The rewrite must reach the serialized payload, not just the accessor.
	payload, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"title":"Giyim - Tişört"`)
	assert.NotContains(t, string(payload), domain.PlaceholderTitle)
	assert.Contains(t, string(payload), `"discount_percentage":50`)
}
