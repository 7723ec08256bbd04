package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
)

type stubSource struct {
	products []domain.Product
}

func (s *stubSource) Load(context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func loadedStore(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore(&stubSource{products: []domain.Product{
		{ID: "p1", Title: "Samsung Galaxy S21", CategoryLevel2: "Telefon", ReviewCount: 500},
		{ID: "p2", Title: "Lorem Ipsum", CategoryLevel2: "Telefon", CategoryLeaf: "Akıllı Telefon", ReviewCount: 50},
		{ID: "p3", Title: "Basic Tişört", CategoryLevel2: "Giyim", ReviewCount: 10},
	}}, testLogger())
	_, err := store.Refresh(context.Background())
	require.NoError(t, err)
	return store
}

func TestFallbackScanQuery(t *testing.T) {
	f := NewFallbackScan(loadedStore(t))

	docs, err := f.Query(context.Background(), "telefon", 10)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "p1", docs[0].ID)
	assert.Equal(t, "p2", docs[1].ID)
	assert.Equal(t, KindCategory, docs[2].Kind)
	assert.Equal(t, "Telefon", docs[2].Title)
}

func TestFallbackScanDistinctCategoryDocuments(t *testing.T) {
	f := NewFallbackScan(loadedStore(t))

	// Two products share the Telefon category; one category document comes out.
	docs, err := f.Query(context.Background(), "telefon", 10)
	require.NoError(t, err)

	categories := 0
	for _, d := range docs {
		if d.Kind == KindCategory {
			categories++
		}
	}
	assert.Equal(t, 1, categories)
}

func TestFallbackScanCategorySurvivesProductLimit(t *testing.T) {
	f := NewFallbackScan(loadedStore(t))

	docs, err := f.Query(context.Background(), "telefon", 1)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, KindProduct, docs[0].Kind)
	assert.Equal(t, KindCategory, docs[1].Kind)
}

func TestFallbackScanServesDisplayTitles(t *testing.T) {
	f := NewFallbackScan(loadedStore(t))

	docs, err := f.Query(context.Background(), "akıllı", 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Telefon - Akıllı Telefon", docs[0].Title)
}

func TestFallbackScanFullTextFlatScores(t *testing.T) {
	f := NewFallbackScan(loadedStore(t))

	hits, err := f.FullTextSearch(context.Background(), "telefon", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Equal(t, KindProduct, h.Kind)
		assert.Equal(t, 1.0, h.Score)
	}
}

func TestFallbackScanUnavailableBeforeFirstLoad(t *testing.T) {
	store := catalog.NewStore(&stubSource{}, testLogger())
	f := NewFallbackScan(store)

	_, err := f.Query(context.Background(), "telefon", 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}
