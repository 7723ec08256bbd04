package index

import (
	"context"
	"sort"
	"strings"

	"github.com/utafrali/SearchGo/internal/catalog"
)

// FallbackScan answers index queries by scanning the in-memory catalog
// snapshot directly. It exists so suggestion and search degrade to a slower
// but always-available path when the real index is down. Matches carry a
// flat score; meaningful ordering comes from popularity alone.
type FallbackScan struct {
	store *catalog.Store
}

// NewFallbackScan creates a scanner over the given catalog store.
func NewFallbackScan(store *catalog.Store) *FallbackScan {
	return &FallbackScan{store: store}
}

const (
	// fallbackCategoryLimit bounds the distinct category documents emitted
	// per scan.
	fallbackCategoryLimit = 3

	// fallbackCategoryPopularity is the fixed weight for scanned category
	// documents, the same weight the rebuilt index gives category entries.
	fallbackCategoryPopularity = 100
)

// BulkReplace is a no-op: the scanner reads the live catalog snapshot and
// holds no state of its own.
func (f *FallbackScan) BulkReplace(context.Context, []Document) error {
	return nil
}

// Query scans product titles and level2 categories for the given partial
// text, most reviewed first. Each distinct matching level2 name also yields a
// category document, appended after the products so the product limit never
// starves them.
func (f *FallbackScan) Query(_ context.Context, prefix string, maxResults int) ([]Document, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	needle := strings.ToLower(strings.TrimSpace(prefix))
	if needle == "" {
		return nil, nil
	}

	snap := f.store.Current()
	if snap == nil {
		return nil, ErrUnavailable
	}

	var products, categories []Document
	seenCategories := make(map[string]struct{})
	for _, p := range snap.All() {
		title := p.DisplayTitle()
		titleMatch := strings.Contains(strings.ToLower(title), needle)
		categoryMatch := p.CategoryLevel2 != "" &&
			strings.Contains(strings.ToLower(p.CategoryLevel2), needle)

		if categoryMatch && len(categories) < fallbackCategoryLimit {
			if _, ok := seenCategories[p.CategoryLevel2]; !ok {
				seenCategories[p.CategoryLevel2] = struct{}{}
				categories = append(categories, Document{
					ID:             "category:" + p.CategoryLevel2,
					Title:          p.CategoryLevel2,
					CategoryLevel1: p.CategoryLevel1,
					CategoryLevel2: p.CategoryLevel2,
					Kind:           KindCategory,
					Popularity:     fallbackCategoryPopularity,
				})
			}
		}

		if !titleMatch && !categoryMatch {
			continue
		}
		products = append(products, Document{
			ID:             p.ID,
			Title:          title,
			CategoryLevel1: p.CategoryLevel1,
			CategoryLevel2: p.CategoryLevel2,
			CategoryLeaf:   p.CategoryLeaf,
			Kind:           KindProduct,
			Popularity:     p.ReviewCount,
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Popularity > products[j].Popularity
	})
	if len(products) > maxResults {
		products = products[:maxResults]
	}
	return append(products, categories...), nil
}

// FullTextSearch scans the catalog for products matching the given text. All
// matches score 1.0, so callers ordering by score fall through to their
// popularity tiebreak. Category documents are dropped: full-text consumers
// rank products only.
func (f *FallbackScan) FullTextSearch(ctx context.Context, text string, maxResults int) ([]Hit, error) {
	docs, err := f.Query(ctx, text, maxResults)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(docs))
	for _, d := range docs {
		if d.Kind != KindProduct {
			continue
		}
		hits = append(hits, Hit{Document: d, Score: 1.0})
	}
	return hits, nil
}
