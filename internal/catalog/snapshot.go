package catalog

import (
	"sort"

	"github.com/utafrali/SearchGo/internal/domain"
)

// Snapshot is an immutable view of the catalog. All derived aggregates are
// computed once at build time and share the snapshot's lifetime, so readers
// never observe category counts that disagree with the product set they
// summarize.
type Snapshot struct {
	generation uint64
	products   []domain.Product
	byID       map[string]int

	categories []domain.CategoryNode
	grouped    []domain.CategoryGroup
	popular    []domain.PopularCategory
}

// newSnapshot builds a snapshot and its derived category views.
func newSnapshot(generation uint64, products []domain.Product) *Snapshot {
	s := &Snapshot{
		generation: generation,
		products:   products,
		byID:       make(map[string]int, len(products)),
	}
	for i := range products {
		s.byID[products[i].ID] = i
	}
	s.buildCategoryViews()
	return s
}

// Generation identifies which load produced this snapshot.
func (s *Snapshot) Generation() uint64 { return s.generation }

// Len returns the number of products in the snapshot.
func (s *Snapshot) Len() int { return len(s.products) }

// All returns every product. Callers must not mutate the returned slice.
func (s *Snapshot) All() []domain.Product { return s.products }

// ByID looks up a product by its opaque ID.
func (s *Snapshot) ByID(id string) (domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// Sample returns a deterministic subset of at most n products. The same
// snapshot always yields the same sample; stride selection keeps the subset
// spread across the catalog instead of biased toward its head.
func (s *Snapshot) Sample(n int) []domain.Product {
	if n <= 0 {
		return nil
	}
	if n >= len(s.products) {
		return s.products
	}

	sample := make([]domain.Product, 0, n)
	stride := float64(len(s.products)) / float64(n)
	for i := 0; i < n; i++ {
		sample = append(sample, s.products[int(float64(i)*stride)])
	}
	return sample
}

// Categories returns all (level1, level2) aggregates, most populated first.
func (s *Snapshot) Categories() []domain.CategoryNode { return s.categories }

// Grouped returns the category aggregates grouped by level1, each group's
// subcategories most populated first.
func (s *Snapshot) Grouped() []domain.CategoryGroup { return s.grouped }

// Popular returns up to limit level2 categories holding at least minCount
// products, ranked by product count descending.
func (s *Snapshot) Popular(limit, minCount int) []domain.PopularCategory {
	if limit <= 0 {
		return nil
	}
	out := make([]domain.PopularCategory, 0, limit)
	for _, c := range s.popular {
		if c.ProductCount < minCount {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *Snapshot) buildCategoryViews() {
	type key struct{ level1, level2 string }
	counts := make(map[key]int)

	type agg struct {
		count       int
		ratingSum   float64
		ratingCount int
		priceSum    float64
		priceCount  int
	}
	level2Agg := make(map[string]*agg)

	for i := range s.products {
		p := &s.products[i]
		if p.CategoryLevel2 == "" {
			continue
		}
		counts[key{p.CategoryLevel1, p.CategoryLevel2}]++

		a := level2Agg[p.CategoryLevel2]
		if a == nil {
			a = &agg{}
			level2Agg[p.CategoryLevel2] = a
		}
		a.count++
		if p.AverageRating != nil {
			a.ratingSum += *p.AverageRating
			a.ratingCount++
		}
		if p.OriginalPrice > 0 {
			a.priceSum += p.OriginalPrice
			a.priceCount++
		}
	}

	s.categories = make([]domain.CategoryNode, 0, len(counts))
	for k, n := range counts {
		s.categories = append(s.categories, domain.CategoryNode{
			Level1:       k.level1,
			Level2:       k.level2,
			ProductCount: n,
		})
	}
	sort.Slice(s.categories, func(i, j int) bool {
		if s.categories[i].ProductCount != s.categories[j].ProductCount {
			return s.categories[i].ProductCount > s.categories[j].ProductCount
		}
		return s.categories[i].Level2 < s.categories[j].Level2
	})

	// Grouped view: bucket the sorted nodes by level1 so each group's
	// subcategories stay in count order.
	groupIdx := make(map[string]int)
	for _, node := range s.categories {
		i, ok := groupIdx[node.Level1]
		if !ok {
			i = len(s.grouped)
			groupIdx[node.Level1] = i
			s.grouped = append(s.grouped, domain.CategoryGroup{Level1: node.Level1})
		}
		s.grouped[i].Subcategories = append(s.grouped[i].Subcategories, node)
		s.grouped[i].TotalProducts += node.ProductCount
	}
	sort.Slice(s.grouped, func(i, j int) bool {
		if s.grouped[i].TotalProducts != s.grouped[j].TotalProducts {
			return s.grouped[i].TotalProducts > s.grouped[j].TotalProducts
		}
		return s.grouped[i].Level1 < s.grouped[j].Level1
	})

	s.popular = make([]domain.PopularCategory, 0, len(level2Agg))
	for name, a := range level2Agg {
		pc := domain.PopularCategory{Level2: name, ProductCount: a.count}
		if a.ratingCount > 0 {
			pc.AvgRating = a.ratingSum / float64(a.ratingCount)
		}
		if a.priceCount > 0 {
			pc.AvgPrice = a.priceSum / float64(a.priceCount)
		}
		s.popular = append(s.popular, pc)
	}
	sort.Slice(s.popular, func(i, j int) bool {
		if s.popular[i].ProductCount != s.popular[j].ProductCount {
			return s.popular[i].ProductCount > s.popular[j].ProductCount
		}
		return s.popular[i].Level2 < s.popular[j].Level2
	})
}
