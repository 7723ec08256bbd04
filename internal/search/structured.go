package search

import (
	"context"
	"strings"

	"github.com/utafrali/SearchGo/internal/catalog"
	"github.com/utafrali/SearchGo/internal/domain"
)

// Structured ranks by product attributes alone: filters narrow the candidate
// set first, then an optional case-insensitive substring match on the title
// and category names selects products, ordered most reviewed first. Text
// relevance never influences the order, so every match carries the same
// score. Runs entirely against the snapshot and never degrades.
type Structured struct{}

// NewStructured creates the structured ranking strategy.
func NewStructured() *Structured {
	return &Structured{}
}

// Name returns the mode identifier.
func (s *Structured) Name() string { return domain.ModeStructured }

// Rank implements the Strategy interface.
func (s *Structured) Rank(_ context.Context, snap *catalog.Snapshot, q domain.SearchQuery) ([]domain.ScoredProduct, bool, error) {
	candidates := Apply(snap.All(), q.Filters)

	needle := strings.ToLower(strings.TrimSpace(q.Text))

	matched := make([]domain.ScoredProduct, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		matched = append(matched, domain.ScoredProduct{Product: *p, Score: 1.0})
	}

	sortByPopularity(matched)
	return truncate(matched, q.Limit), false, nil
}

// matchesText reports whether the query text appears in the product's served
// title or any of its category names.
func matchesText(p *domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.DisplayTitle()), needle) ||
		strings.Contains(strings.ToLower(p.CategoryLevel1), needle) ||
		strings.Contains(strings.ToLower(p.CategoryLevel2), needle) ||
		strings.Contains(strings.ToLower(p.CategoryLeaf), needle)
}
