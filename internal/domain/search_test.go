package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalScored(t *testing.T, sp ScoredProduct) map[string]any {
	t.Helper()
	raw, err := json.Marshal(sp)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestScoredProductJSONRewritesPlaceholderTitle(t *testing.T) {
	out := marshalScored(t, ScoredProduct{
		Product: Product{
			ID:             "p1",
			Title:          PlaceholderTitle,
			CategoryLevel2: "Giyim",
			CategoryLeaf:   "Tişört",
		},
		Score: 1.0,
	})

	assert.Equal(t, "Giyim - Tişört", out["title"])
	assert.Equal(t, 1.0, out["score"])
}

func TestScoredProductJSONKeepsRealTitle(t *testing.T) {
	out := marshalScored(t, ScoredProduct{
		Product: Product{ID: "p1", Title: "Samsung Galaxy S21", CategoryLevel2: "Telefon"},
	})

	assert.Equal(t, "Samsung Galaxy S21", out["title"])
}

func TestScoredProductJSONDerivesDiscount(t *testing.T) {
	out := marshalScored(t, ScoredProduct{
		Product: Product{ID: "p1", Title: "Kazak", OriginalPrice: 100, SellingPrice: 80},
	})

	assert.Equal(t, 20.0, out["discount_percentage"])
}

func TestScoredProductJSONKeepsStoredDiscount(t *testing.T) {
	out := marshalScored(t, ScoredProduct{
		Product: Product{
			ID: "p1", Title: "Kazak",
			OriginalPrice: 100, SellingPrice: 80,
			DiscountPercentage: fptr(35),
		},
	})

	assert.Equal(t, 35.0, out["discount_percentage"])
}

func TestScoredProductJSONOmitsDiscountWithoutSpread(t *testing.T) {
	out := marshalScored(t, ScoredProduct{
		Product: Product{ID: "p1", Title: "Kazak", SellingPrice: 80},
	})

	_, present := out["discount_percentage"]
	assert.False(t, present)
}
