package domain

// PlaceholderTitle marks catalog rows whose real title was scrubbed upstream.
// Such rows are served with a synthesized title and excluded from the
// autocomplete index.
const PlaceholderTitle = "Lorem Ipsum"

// Product is an immutable catalog entry. Products are created when a catalog
// snapshot loads and live until the snapshot is replaced; nothing mutates them
// in place.
type Product struct {
	ID                 string   `json:"content_id"`
	Title              string   `json:"title"`
	CategoryLevel1     string   `json:"level1_category_name"`
	CategoryLevel2     string   `json:"level2_category_name"`
	CategoryLeaf       string   `json:"leaf_category_name"`
	OriginalPrice      float64  `json:"original_price"`
	SellingPrice       float64  `json:"selling_price"`
	DiscountedPrice    float64  `json:"discounted_price"`
	ReviewCount        int      `json:"review_count"`
	RatingCount        int      `json:"rating_count"`
	AverageRating      *float64 `json:"average_rating,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	ImageURL           string   `json:"image_url"`
	MerchantCount      int      `json:"merchant_count"`
}

// DisplayTitle returns the title suitable for serving. Placeholder titles are
// rewritten as "<level2> - <leaf>" so the client never sees scrubbed text.
func (p Product) DisplayTitle() string {
	if p.Title == PlaceholderTitle || p.Title == "" {
		if p.CategoryLevel2 != "" && p.CategoryLeaf != "" {
			return p.CategoryLevel2 + " - " + p.CategoryLeaf
		}
		if p.CategoryLevel2 != "" {
			return p.CategoryLevel2
		}
		return "Ürün"
	}
	return p.Title
}

// Rating returns the average rating, or 0 when the product has none.
func (p Product) Rating() float64 {
	if p.AverageRating == nil {
		return 0
	}
	return *p.AverageRating
}

// EffectiveDiscountPercentage returns the stored discount percentage when
// present. When absent it is derived from the price fields, rounded to one
// decimal; products without a meaningful original/selling spread return nil.
// The stored value is never overridden: promotional feeds may set a percentage
// that diverges from the price identity.
func (p Product) EffectiveDiscountPercentage() *float64 {
	if p.DiscountPercentage != nil {
		return p.DiscountPercentage
	}
	if p.OriginalPrice > 0 && p.SellingPrice > 0 && p.OriginalPrice > p.SellingPrice {
		pct := (p.OriginalPrice - p.SellingPrice) / p.OriginalPrice * 100
		pct = float64(int(pct*10+0.5)) / 10
		return &pct
	}
	return nil
}

// CategoryNode is a derived (level1, level2) aggregate with a product count.
// It is recomputed from the snapshot and never persisted independently.
type CategoryNode struct {
	Level1       string `json:"level1_category_name"`
	Level2       string `json:"level2_category_name"`
	ProductCount int    `json:"product_count"`
}

// CategoryGroup is the grouped-by-level1 view served to sidebar clients.
type CategoryGroup struct {
	Level1        string         `json:"level1_category_name"`
	TotalProducts int            `json:"total_products"`
	Subcategories []CategoryNode `json:"subcategories"`
}

// PopularCategory is a level2 category ranked by product count, with
// aggregates useful for merchandising views.
type PopularCategory struct {
	Level2       string  `json:"level2_category_name"`
	ProductCount int     `json:"product_count"`
	AvgRating    float64 `json:"avg_rating"`
	AvgPrice     float64 `json:"avg_price"`
}
