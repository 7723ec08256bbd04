package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "real title passes through",
			product: Product{Title: "Samsung Galaxy S21", CategoryLevel2: "Telefon", CategoryLeaf: "Akıllı Telefon"},
			want:    "Samsung Galaxy S21",
		},
		{
			name:    "placeholder rewritten from categories",
			product: Product{Title: "Lorem Ipsum", CategoryLevel2: "Telefon", CategoryLeaf: "Akıllı Telefon"},
			want:    "Telefon - Akıllı Telefon",
		},
		{
			name:    "placeholder with level2 only",
			product: Product{Title: "Lorem Ipsum", CategoryLevel2: "Telefon"},
			want:    "Telefon",
		},
		{
			name:    "placeholder with no categories",
			product: Product{Title: "Lorem Ipsum"},
			want:    "Ürün",
		},
		{
			name:    "empty title treated like placeholder",
			product: Product{Title: "", CategoryLevel2: "Giyim", CategoryLeaf: "Tişört"},
			want:    "Giyim - Tişört",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.DisplayTitle())
		})
	}
}

func TestRating(t *testing.T) {
	assert.Equal(t, 0.0, Product{}.Rating())
	assert.Equal(t, 4.5, Product{AverageRating: fptr(4.5)}.Rating())
}

func TestEffectiveDiscountPercentage(t *testing.T) {
	t.Run("stored value wins", func(t *testing.T) {
		p := Product{OriginalPrice: 100, SellingPrice: 50, DiscountPercentage: fptr(10)}
		got := p.EffectiveDiscountPercentage()
		require.NotNil(t, got)
		assert.Equal(t, 10.0, *got)
	})

	t.Run("derived from prices rounded to one decimal", func(t *testing.T) {
		p := Product{OriginalPrice: 300, SellingPrice: 200}
		got := p.EffectiveDiscountPercentage()
		require.NotNil(t, got)
		assert.Equal(t, 33.3, *got)
	})

	t.Run("no spread yields nil", func(t *testing.T) {
		assert.Nil(t, Product{OriginalPrice: 100, SellingPrice: 100}.EffectiveDiscountPercentage())
		assert.Nil(t, Product{OriginalPrice: 0, SellingPrice: 50}.EffectiveDiscountPercentage())
		assert.Nil(t, Product{OriginalPrice: 50, SellingPrice: 100}.EffectiveDiscountPercentage())
	})
}

func TestIsValidMode(t *testing.T) {
	assert.True(t, IsValidMode(ModeSimilarity))
	assert.True(t, IsValidMode(ModeStructured))
	assert.False(t, IsValidMode("fuzzy"))
	assert.False(t, IsValidMode(""))
}

func TestFilterSetIsEmpty(t *testing.T) {
	assert.True(t, FilterSet{}.IsEmpty())
	assert.False(t, FilterSet{CategoryLevel2: []string{"Telefon"}}.IsEmpty())
	assert.False(t, FilterSet{MinPrice: fptr(10)}.IsEmpty())
}
