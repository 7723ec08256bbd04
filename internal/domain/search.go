package domain

import "encoding/json"

// Ranking modes selectable per request.
const (
	ModeSimilarity = "similarity"
	ModeStructured = "structured"
)

// ValidModes returns the list of valid ranking modes.
func ValidModes() []string {
	return []string{ModeSimilarity, ModeStructured}
}

// IsValidMode checks whether the given mode string is a valid ranking mode.
func IsValidMode(mode string) bool {
	for _, m := range ValidModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// FilterSet holds the structured predicates applied orthogonally to text
// scoring. The zero value matches everything.
type FilterSet struct {
	// CategoryLevel2 is OR-combined: a product passes if its level2 category
	// is any one of the listed names.
	CategoryLevel2 []string `json:"category_level2_list,omitempty"`
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	MinRating      *float64 `json:"min_rating,omitempty"`
	MinReviewCount *int     `json:"min_review_count,omitempty"`
}

// IsEmpty reports whether the filter set constrains nothing.
func (f FilterSet) IsEmpty() bool {
	return len(f.CategoryLevel2) == 0 &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinRating == nil && f.MinReviewCount == nil
}

// SearchQuery holds all parameters for a search request.
type SearchQuery struct {
	Text    string    `json:"query"`
	Limit   int       `json:"limit"`
	Mode    string    `json:"mode"`
	Filters FilterSet `json:"filters"`
}

// ScoredProduct is a product paired with its ranking score.
type ScoredProduct struct {
	Product
	Score float64 `json:"score"`
}

// MarshalJSON serves the display view of the embedded product: scrubbed
// titles are rewritten via DisplayTitle and a missing discount percentage is
// derived from the price spread. Internal consumers keep seeing the raw
// fields; only the serialized form is rewritten.
func (sp ScoredProduct) MarshalJSON() ([]byte, error) {
	type productView Product
	view := productView(sp.Product)
	view.Title = sp.DisplayTitle()
	view.DiscountPercentage = sp.EffectiveDiscountPercentage()
	return json.Marshal(struct {
		productView
		Score float64 `json:"score"`
	}{view, sp.Score})
}

// SearchResult holds a ranked, truncated result set.
type SearchResult struct {
	Query    string          `json:"query"`
	Mode     string          `json:"mode"`
	Products []ScoredProduct `json:"products"`
	Total    int             `json:"total_results"`
	TookMs   int64           `json:"took_ms"`

	// Degraded signals that the text index was unavailable and an in-memory
	// path produced the result. Diagnostic only; the result itself is valid.
	Degraded bool `json:"degraded,omitempty"`
}

// Suggestion kinds.
const (
	SuggestionProduct  = "product"
	SuggestionCategory = "category"
)

// SuggestionItem is a single autocomplete suggestion.
type SuggestionItem struct {
	Text     string `json:"text"`
	Kind     string `json:"type"`
	Category string `json:"category,omitempty"`
}
