package search

import "github.com/utafrali/SearchGo/internal/domain"

// Matches reports whether the product passes every predicate in the filter
// set. Predicates combine with AND; the level2 category list combines with OR
// internally. Price bounds are inclusive and apply to the selling price.
// Products missing an optional attribute fail any floor on that attribute.
func Matches(p *domain.Product, f domain.FilterSet) bool {
	if len(f.CategoryLevel2) > 0 {
		found := false
		for _, c := range f.CategoryLevel2 {
			if p.CategoryLevel2 == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		// A non-positive selling price means the attribute is absent, so the
		// product cannot satisfy a price constraint.
		if p.SellingPrice <= 0 {
			return false
		}
		if f.MinPrice != nil && p.SellingPrice < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && p.SellingPrice > *f.MaxPrice {
			return false
		}
	}

	if f.MinRating != nil {
		if p.AverageRating == nil || *p.AverageRating < *f.MinRating {
			return false
		}
	}

	if f.MinReviewCount != nil && p.ReviewCount < *f.MinReviewCount {
		return false
	}

	return true
}

// Apply returns the subset of products passing the filter set. The input
// order is preserved; a nil-constraint filter returns the input as-is.
func Apply(products []domain.Product, f domain.FilterSet) []domain.Product {
	if f.IsEmpty() {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if Matches(&products[i], f) {
			out = append(out, products[i])
		}
	}
	return out
}
