package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/index"
)

// Suggest resolves autocomplete suggestions for a partial query. It never
// returns an error: any failure along the way degrades to an empty list, and
// prefixes shorter than the configured minimum return empty without touching
// the index.
func (s *Service) Suggest(ctx context.Context, prefix string) []domain.SuggestionItem {
	prefix = strings.TrimSpace(prefix)
	if len([]rune(prefix)) < s.opts.SuggestMinPrefix {
		return []domain.SuggestionItem{}
	}

	if s.cache != nil {
		if items, ok := s.cache.Get(ctx, prefix); ok {
			suggestRequestsTotal.WithLabelValues("hit").Inc()
			return items
		}
	}
	suggestRequestsTotal.WithLabelValues("miss").Inc()

	// Over-fetch so deduplication and the category cap still leave a full
	// list to choose from.
	docs, degraded, err := s.idx.Query(ctx, prefix, s.opts.SuggestMax*3)
	if err != nil {
		s.logger.Warn("suggestion lookup failed",
			slog.String("prefix", prefix),
			slog.Bool("degraded", degraded),
			slog.String("error", err.Error()),
		)
		return []domain.SuggestionItem{}
	}

	items := s.assembleSuggestions(docs)

	if s.cache != nil && !degraded {
		s.cache.Set(ctx, prefix, items)
	}
	return items
}

// assembleSuggestions turns index documents into the served suggestion list:
// case-insensitive deduplication, category suggestions capped, products
// listed before categories, total capped.
func (s *Service) assembleSuggestions(docs []index.Document) []domain.SuggestionItem {
	seen := make(map[string]struct{}, len(docs))
	products := make([]domain.SuggestionItem, 0, s.opts.SuggestMax)
	categories := make([]domain.SuggestionItem, 0, s.opts.SuggestMaxCategories)

	for _, doc := range docs {
		norm := strings.ToLower(strings.TrimSpace(doc.Title))
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}

		switch doc.Kind {
		case index.KindCategory:
			if len(categories) >= s.opts.SuggestMaxCategories {
				continue
			}
			seen[norm] = struct{}{}
			categories = append(categories, domain.SuggestionItem{
				Text: doc.Title,
				Kind: domain.SuggestionCategory,
			})
		default:
			if len(products) >= s.opts.SuggestMax {
				continue
			}
			seen[norm] = struct{}{}
			products = append(products, domain.SuggestionItem{
				Text:     doc.Title,
				Kind:     domain.SuggestionProduct,
				Category: doc.CategoryLevel2,
			})
		}
	}

	if keep := s.opts.SuggestMax - len(categories); len(products) > keep {
		products = products[:keep]
	}
	return append(products, categories...)
}
