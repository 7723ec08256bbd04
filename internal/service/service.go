package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/utafrali/SearchGo/internal/cache"
	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/index"
	"github.com/utafrali/SearchGo/internal/search"
	apperrors "github.com/utafrali/SearchGo/pkg/errors"
)

// Options holds the service tunables. Zero fields take the defaults below.
type Options struct {
	DefaultLimit         int
	MaxLimit             int
	SuggestMinPrefix     int
	SuggestMax           int
	SuggestMaxCategories int
	SampleSize           int
	PopularMinProducts   int
}

func (o Options) withDefaults() Options {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 50
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 200
	}
	if o.SuggestMinPrefix <= 0 {
		o.SuggestMinPrefix = 2
	}
	if o.SuggestMax <= 0 {
		o.SuggestMax = 10
	}
	if o.SuggestMaxCategories <= 0 {
		o.SuggestMaxCategories = 3
	}
	if o.SampleSize <= 0 {
		o.SampleSize = 10000
	}
	if o.PopularMinProducts <= 0 {
		o.PopularMinProducts = 100
	}
	return o
}

// Service implements the search, autocomplete, category and indexing
// operations over the catalog store and text index.
type Service struct {
	store      *catalog.Store
	idx        *index.Failover
	strategies map[string]search.Strategy
	cache      *cache.SuggestCache // nil disables suggestion caching
	opts       Options
	logger     *slog.Logger

	reindexMu sync.Mutex // serializes index rebuilds
}

// New creates the service. The suggestion cache is optional and may be nil.
func New(store *catalog.Store, idx *index.Failover, suggestCache *cache.SuggestCache, opts Options, logger *slog.Logger) *Service {
	return &Service{
		store: store,
		idx:   idx,
		strategies: map[string]search.Strategy{
			domain.ModeStructured: search.NewStructured(),
			domain.ModeSimilarity: search.NewSimilarity(idx),
		},
		cache:  suggestCache,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Search validates and executes a search query.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	q, err := s.normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	snap := s.store.Current()
	if snap == nil {
		return nil, apperrors.Unavailable("CATALOG_NOT_LOADED", "catalog has not been loaded yet")
	}

	strategy := s.strategies[q.Mode]
	start := time.Now()

	products, degraded, err := strategy.Rank(ctx, snap, q)
	took := time.Since(start)

	searchDuration.WithLabelValues(q.Mode).Observe(took.Seconds())
	if err != nil {
		searchRequestsTotal.WithLabelValues(q.Mode, "error").Inc()
		if errors.Is(err, index.ErrUnavailable) {
			// Primary and fallback both failed.
			return nil, &apperrors.AppError{
				Code:    "INDEX_UNAVAILABLE",
				Message: "text index is unavailable",
				Status:  http.StatusServiceUnavailable,
				Err:     err,
			}
		}
		return nil, fmt.Errorf("search: %w", err)
	}
	searchRequestsTotal.WithLabelValues(q.Mode, "ok").Inc()
	if degraded {
		searchDegradedTotal.Inc()
	}

	s.logger.Info("search executed",
		slog.String("mode", q.Mode),
		slog.String("query", q.Text),
		slog.Int("results", len(products)),
		slog.Bool("degraded", degraded),
		slog.Duration("took", took),
	)

	return &domain.SearchResult{
		Query:    q.Text,
		Mode:     q.Mode,
		Products: products,
		Total:    len(products),
		TookMs:   took.Milliseconds(),
		Degraded: degraded,
	}, nil
}

// normalizeQuery applies defaults and rejects malformed parameters.
func (s *Service) normalizeQuery(q domain.SearchQuery) (domain.SearchQuery, error) {
	if q.Limit < 0 {
		return q, apperrors.InvalidInput("limit must not be negative")
	}
	if q.Limit == 0 {
		q.Limit = s.opts.DefaultLimit
	}
	if q.Limit > s.opts.MaxLimit {
		q.Limit = s.opts.MaxLimit
	}

	if q.Mode == "" {
		q.Mode = domain.ModeStructured
	}
	if !domain.IsValidMode(q.Mode) {
		return q, apperrors.InvalidInput(fmt.Sprintf("unknown ranking mode %q", q.Mode))
	}

	f := q.Filters
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return q, apperrors.InvalidInput("min_price must not be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return q, apperrors.InvalidInput("max_price must not be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return q, apperrors.InvalidInput("min_price must not exceed max_price")
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > 5) {
		return q, apperrors.InvalidInput("min_rating must be between 0 and 5")
	}
	if f.MinReviewCount != nil && *f.MinReviewCount < 0 {
		return q, apperrors.InvalidInput("min_review_count must not be negative")
	}

	return q, nil
}

// RefreshCatalog reloads the catalog from its source and swaps in the new
// snapshot.
func (s *Service) RefreshCatalog(ctx context.Context) (*catalog.Snapshot, error) {
	snap, err := s.store.Refresh(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrSourceUnavailable) {
			return nil, &apperrors.AppError{
				Code:    "CATALOG_UNAVAILABLE",
				Message: "catalog source is unavailable",
				Status:  http.StatusServiceUnavailable,
				Err:     err,
			}
		}
		return nil, err
	}
	catalogProducts.Set(float64(snap.Len()))
	return snap, nil
}
