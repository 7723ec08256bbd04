package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/index"
	"github.com/utafrali/SearchGo/internal/index/memory"
	"github.com/utafrali/SearchGo/internal/service"
	"github.com/utafrali/SearchGo/pkg/health"
	"github.com/utafrali/SearchGo/pkg/httputil"
	"github.com/utafrali/SearchGo/pkg/logger"
	"github.com/utafrali/SearchGo/pkg/middleware"
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

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Samsung Galaxy S21", CategoryLevel1: "Elektronik", CategoryLevel2: "Telefon", SellingPrice: 200, ReviewCount: 500, AverageRating: fptr(4.5)},
		{ID: "p2", Title: "Samsung Kulaklık", CategoryLevel1: "Elektronik", CategoryLevel2: "Kulaklık", SellingPrice: 80, ReviewCount: 200, AverageRating: fptr(4.1)},
		{ID: "p3", Title: "iPhone 13", CategoryLevel1: "Elektronik", CategoryLevel2: "Telefon", SellingPrice: 900, ReviewCount: 800, AverageRating: fptr(4.7)},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := catalog.NewStore(&stubSource{products: fixtureProducts()}, testLogger())
	idx := index.NewFailover(memory.New(), index.NewFallbackScan(store), testLogger())
	svc := service.New(store, idx, nil, service.Options{}, testLogger())

	_, err := svc.RefreshCatalog(context.Background())
	require.NoError(t, err)
	_, err = svc.Reindex(context.Background())
	require.NoError(t, err)

	return NewRouter(svc, health.NewHandler(), middleware.DefaultCORSConfig(), testLogger())
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage         `json:"data"`
		Error *httputil.ErrorResponse `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Nil(t, resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

func TestSearchGet(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=sam&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.SearchResult
	decodeData(t, w, &result)
	assert.Equal(t, "sam", result.Query)
	assert.Equal(t, domain.ModeStructured, result.Mode)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "p1", result.Products[0].ID)
}

func TestSearchGetInvalidLimit(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=sam&limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchPostWithFilters(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/search", `{
		"query": "",
		"category_level2_list": ["Telefon"],
		"min_price": 100
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.SearchResult
	decodeData(t, w, &result)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "p3", result.Products[0].ID)
}

func TestSearchPostValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/search", `{"mode":"fuzzy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/search", `{"min_rating": 9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/search", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchPostRequiresJSONContentType(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestAdvancedSearchDefaultsToSimilarity(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/search/advanced", `{"query":"samsung"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.SearchResult
	decodeData(t, w, &result)
	assert.Equal(t, domain.ModeSimilarity, result.Mode)
	assert.NotEmpty(t, result.Products)
}

func TestSuggestEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/search/suggest?q=sam", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result suggestResponse
	decodeData(t, w, &result)
	assert.Equal(t, "sam", result.Prefix)
	assert.NotEmpty(t, result.Suggestions)
}

func TestSuggestShortPrefixStillOK(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/search/suggest?q=s", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result suggestResponse
	decodeData(t, w, &result)
	assert.Empty(t, result.Suggestions)
}

func TestReindexEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/search/reindex", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats service.IndexStats
	decodeData(t, w, &stats)
	assert.Equal(t, 3, stats.ProductDocs)
	assert.Positive(t, stats.DocumentCount)
}

func TestCatalogRefreshEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/catalog/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]any
	decodeData(t, w, &result)
	assert.Equal(t, true, result["refreshed"])
	assert.Equal(t, float64(3), result["total_products"])
}

func TestCategoriesEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=")

	var nodes []domain.CategoryNode
	decodeData(t, w, &nodes)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Telefon", nodes[0].Level2)

	w = doRequest(t, router, http.MethodGet, "/api/v1/categories/grouped", "")
	require.Equal(t, http.StatusOK, w.Code)

	var groups []domain.CategoryGroup
	decodeData(t, w, &groups)
	require.Len(t, groups, 1)
	assert.Equal(t, "Elektronik", groups[0].Level1)

	w = doRequest(t, router, http.MethodGet, "/api/v1/categories/popular?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
