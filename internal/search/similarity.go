package search

import (
	"context"
	"fmt"

	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/index"
)

// minRecall is the floor on how many index hits similarity ranking recalls
// before filtering. Recalling more than the requested limit keeps filters
// from starving the result set when they reject most of the top hits.
const minRecall = 100

// Similarity ranks by text relevance from the full-text index, then applies
// filters to the recalled set. With empty query text relevance is undefined,
// so every filtered product scores 1.0 and popularity decides the order.
type Similarity struct {
	idx *index.Failover
}

// NewSimilarity creates the similarity ranking strategy over the given index.
func NewSimilarity(idx *index.Failover) *Similarity {
	return &Similarity{idx: idx}
}

// Name returns the mode identifier.
func (s *Similarity) Name() string { return domain.ModeSimilarity }

// Rank implements the Strategy interface.
func (s *Similarity) Rank(ctx context.Context, snap *catalog.Snapshot, q domain.SearchQuery) ([]domain.ScoredProduct, bool, error) {
	if q.Text == "" {
		return s.rankAll(snap, q), false, nil
	}

	recall := q.Limit * 4
	if recall < minRecall {
		recall = minRecall
	}

	hits, degraded, err := s.idx.FullTextSearch(ctx, q.Text, recall)
	if err != nil {
		return nil, degraded, fmt.Errorf("similarity rank: %w", err)
	}

	matched := make([]domain.ScoredProduct, 0, len(hits))
	for _, hit := range hits {
		if hit.Kind != index.KindProduct {
			continue
		}
		p, ok := snap.ByID(hit.ID)
		if !ok {
			// Index documents can outlive a catalog refresh; drop orphans.
			continue
		}
		if !Matches(&p, q.Filters) {
			continue
		}
		matched = append(matched, domain.ScoredProduct{Product: p, Score: hit.Score})
	}

	if degraded {
		// Fallback scores are flat; fall back to the popularity order.
		sortByPopularity(matched)
	}
	return truncate(matched, q.Limit), degraded, nil
}

// rankAll serves the empty-text case: every product passing the filters, most
// reviewed first, with a flat score.
func (s *Similarity) rankAll(snap *catalog.Snapshot, q domain.SearchQuery) []domain.ScoredProduct {
	candidates := Apply(snap.All(), q.Filters)
	matched := make([]domain.ScoredProduct, 0, len(candidates))
	for i := range candidates {
		matched = append(matched, domain.ScoredProduct{Product: candidates[i], Score: 1.0})
	}
	sortByPopularity(matched)
	return truncate(matched, q.Limit)
}
