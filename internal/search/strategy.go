package search

import (
	"context"
	"sort"

	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
)

// Strategy ranks catalog products for a query. Implementations are stateless
// and safe for concurrent use; all catalog access goes through the snapshot
// passed per call.
type Strategy interface {
	Name() string

	// Rank returns the scored, filtered, truncated result set. The degraded
	// flag reports that the text index was unavailable and an in-memory path
	// produced the ranking.
	Rank(ctx context.Context, snap *catalog.Snapshot, q domain.SearchQuery) (products []domain.ScoredProduct, degraded bool, err error)
}

// sortByPopularity orders products by review count descending, breaking ties
// by rating descending. This is the canonical "most trusted first" order used
// wherever no text relevance signal exists.
func sortByPopularity(products []domain.ScoredProduct) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].ReviewCount != products[j].ReviewCount {
			return products[i].ReviewCount > products[j].ReviewCount
		}
		return products[i].Rating() > products[j].Rating()
	})
}

// truncate caps the slice at limit.
func truncate(products []domain.ScoredProduct, limit int) []domain.ScoredProduct {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
