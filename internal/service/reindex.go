package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/index"
	apperrors "github.com/utafrali/SearchGo/pkg/errors"
)

const (
	// maxCategoryDocs bounds how many distinct level2 categories get their
	// own suggestion document per rebuild.
	maxCategoryDocs = 500

	// categoryDocPopularity is the fixed popularity assigned to category
	// documents so they rank alongside well-reviewed products.
	categoryDocPopularity = 100

	// minIndexableTitle excludes degenerate titles from the index; a one or
	// two character title produces useless n-grams.
	minIndexableTitle = 3
)

// IndexStats summarizes an index rebuild.
type IndexStats struct {
	Reindexed     bool   `json:"reindexed"`
	Generation    uint64 `json:"catalog_generation"`
	SampleSize    int    `json:"sample_size"`
	ProductDocs   int    `json:"product_documents"`
	CategoryDocs  int    `json:"category_documents"`
	DocumentCount int    `json:"document_count"`
	TookMs        int64  `json:"took_ms"`
}

// Reindex rebuilds the text index from a bounded sample of the current
// snapshot. The full document set is replaced, so repeated calls over the
// same snapshot leave the same document count. Concurrent calls serialize.
func (s *Service) Reindex(ctx context.Context) (*IndexStats, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, apperrors.Unavailable("CATALOG_NOT_LOADED", "catalog has not been loaded yet")
	}

	s.reindexMu.Lock()
	defer s.reindexMu.Unlock()

	start := time.Now()

	sample := snap.Sample(s.opts.SampleSize)
	docs := buildDocuments(sample)

	productDocs := 0
	for i := range docs {
		if docs[i].Kind == index.KindProduct {
			productDocs++
		}
	}

	if err := s.idx.BulkReplace(ctx, docs); err != nil {
		reindexTotal.WithLabelValues("error").Inc()
		if errors.Is(err, index.ErrUnavailable) {
			return nil, &apperrors.AppError{
				Code:    "INDEX_UNAVAILABLE",
				Message: "text index is unavailable",
				Status:  http.StatusServiceUnavailable,
				Err:     err,
			}
		}
		return nil, fmt.Errorf("reindex: %w", err)
	}

	reindexTotal.WithLabelValues("ok").Inc()
	indexDocuments.Set(float64(len(docs)))

	stats := &IndexStats{
		Reindexed:     true,
		Generation:    snap.Generation(),
		SampleSize:    len(sample),
		ProductDocs:   productDocs,
		CategoryDocs:  len(docs) - productDocs,
		DocumentCount: len(docs),
		TookMs:        time.Since(start).Milliseconds(),
	}

	s.logger.Info("text index rebuilt",
		slog.Uint64("generation", stats.Generation),
		slog.Int("documents", stats.DocumentCount),
		slog.Int("products", stats.ProductDocs),
		slog.Int("categories", stats.CategoryDocs),
		slog.Int64("took_ms", stats.TookMs),
	)
	return stats, nil
}

// buildDocuments converts sampled products into index documents: one document
// per indexable product, plus one per distinct level2 category encountered.
// Placeholder and degenerate titles are skipped entirely; their category
// still gets a document, so scrubbed rows remain reachable by category.
func buildDocuments(sample []domain.Product) []index.Document {
	docs := make([]index.Document, 0, len(sample))
	seenCategories := make(map[string]struct{})

	for i := range sample {
		p := &sample[i]

		if p.CategoryLevel2 != "" && len(seenCategories) < maxCategoryDocs {
			if _, ok := seenCategories[p.CategoryLevel2]; !ok {
				seenCategories[p.CategoryLevel2] = struct{}{}
				docs = append(docs, index.Document{
					ID:             "category:" + p.CategoryLevel2,
					Title:          p.CategoryLevel2,
					CategoryLevel1: p.CategoryLevel1,
					CategoryLevel2: p.CategoryLevel2,
					Kind:           index.KindCategory,
					Popularity:     categoryDocPopularity,
				})
			}
		}

		if p.Title == domain.PlaceholderTitle || len([]rune(p.Title)) < minIndexableTitle {
			continue
		}
		docs = append(docs, index.Document{
			ID:             p.ID,
			Title:          p.Title,
			CategoryLevel1: p.CategoryLevel1,
			CategoryLevel2: p.CategoryLevel2,
			CategoryLeaf:   p.CategoryLeaf,
			Kind:           index.KindProduct,
			Popularity:     p.ReviewCount,
		})
	}
	return docs
}
