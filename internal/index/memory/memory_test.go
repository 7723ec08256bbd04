package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/SearchGo/internal/index"
)

func testDocs() []index.Document {
	return []index.Document{
		{ID: "p1", Title: "Samsung Galaxy S21", CategoryLevel1: "Elektronik", CategoryLevel2: "Telefon", Kind: index.KindProduct, Popularity: 500},
		{ID: "p2", Title: "Samsung Kulaklık", CategoryLevel1: "Elektronik", CategoryLevel2: "Kulaklık", Kind: index.KindProduct, Popularity: 200},
		{ID: "p3", Title: "iPhone 13", CategoryLevel1: "Elektronik", CategoryLevel2: "Telefon", Kind: index.KindProduct, Popularity: 800},
		{ID: "category:Telefon", Title: "Telefon", CategoryLevel2: "Telefon", Kind: index.KindCategory, Popularity: 100},
	}
}

func newLoaded(t *testing.T) *Index {
	t.Helper()
	m := New()
	require.NoError(t, m.BulkReplace(context.Background(), testDocs()))
	return m
}

func TestQueryMatchesTitleSubstring(t *testing.T) {
	m := newLoaded(t)

	docs, err := m.Query(context.Background(), "sam", 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "p1", docs[0].ID)
	assert.Equal(t, "p2", docs[1].ID)
}

func TestQueryMatchesCategoryAndOrdersByPopularity(t *testing.T) {
	m := newLoaded(t)

	docs, err := m.Query(context.Background(), "telefon", 10)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "p3", docs[0].ID)
	assert.Equal(t, "p1", docs[1].ID)
	assert.Equal(t, "category:Telefon", docs[2].ID)
}

func TestQueryCaseInsensitive(t *testing.T) {
	m := newLoaded(t)

	docs, err := m.Query(context.Background(), "SAMSUNG", 10)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestQueryRespectsLimit(t *testing.T) {
	m := newLoaded(t)

	docs, err := m.Query(context.Background(), "telefon", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "p3", docs[0].ID)
}

func TestQueryEmptyPrefix(t *testing.T) {
	m := newLoaded(t)

	docs, err := m.Query(context.Background(), "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFullTextSearchScoresAndSkipsCategories(t *testing.T) {
	m := newLoaded(t)

	hits, err := m.FullTextSearch(context.Background(), "telefon", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Equal(t, index.KindProduct, h.Kind)
		assert.Greater(t, h.Score, 0.0)
	}
}

func TestFullTextSearchAllTermsMustMatch(t *testing.T) {
	m := newLoaded(t)

	hits, err := m.FullTextSearch(context.Background(), "samsung galaxy", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "p1", hits[0].ID)
}

func TestFullTextSearchTitleOutranksCategory(t *testing.T) {
	m := newLoaded(t)

	hits, err := m.FullTextSearch(context.Background(), "samsung", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	// Equal scores, so the more popular product wins.
	assert.Equal(t, "p1", hits[0].ID)
}

func TestBulkReplaceSwapsDocumentSet(t *testing.T) {
	m := newLoaded(t)
	require.NoError(t, m.BulkReplace(context.Background(), testDocs()[:1]))

	docs, err := m.Query(context.Background(), "iphone", 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
