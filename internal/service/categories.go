package service

import (
	"github.com/utafrali/SearchGo/internal/domain"
	apperrors "github.com/utafrali/SearchGo/pkg/errors"
)

// Categories returns all (level1, level2) aggregates, most populated first.
func (s *Service) Categories() ([]domain.CategoryNode, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, apperrors.Unavailable("CATALOG_NOT_LOADED", "catalog has not been loaded yet")
	}
	return snap.Categories(), nil
}

// GroupedCategories returns the category aggregates grouped by level1.
func (s *Service) GroupedCategories() ([]domain.CategoryGroup, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, apperrors.Unavailable("CATALOG_NOT_LOADED", "catalog has not been loaded yet")
	}
	return snap.Grouped(), nil
}

// PopularCategories returns up to limit level2 categories holding at least
// the configured minimum number of products.
func (s *Service) PopularCategories(limit int) ([]domain.PopularCategory, error) {
	if limit < 0 {
		return nil, apperrors.InvalidInput("limit must not be negative")
	}
	if limit == 0 {
		limit = 10
	}

	snap := s.store.Current()
	if snap == nil {
		return nil, apperrors.Unavailable("CATALOG_NOT_LOADED", "catalog has not been loaded yet")
	}
	return snap.Popular(limit, s.opts.PopularMinProducts), nil
}
