package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/utafrali/SearchGo/internal/domain"
)

// FileSource reads the catalog from a CSV export. The first row must be a
// header; columns are matched by name so the export can carry extra columns in
// any order.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a catalog source reading from the given CSV path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Load reads and parses the catalog file. Malformed rows are skipped, not
// fatal: a single bad row must not take the whole catalog down.
func (s *FileSource) Load(ctx context.Context) ([]domain.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrSourceUnavailable, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["content_id_hashed"]; !ok {
		return nil, fmt.Errorf("%w: missing content_id_hashed column", ErrSourceUnavailable)
	}

	var products []domain.Product
	skipped := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		p, ok := parseRecord(record, col)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}

	if skipped > 0 {
		s.logger.Warn("skipped malformed catalog rows",
			slog.Int("skipped", skipped),
			slog.Int("loaded", len(products)),
		)
	}

	return products, nil
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRecord(record []string, col map[string]int) (domain.Product, bool) {
	id := field(record, col, "content_id_hashed")
	if id == "" {
		return domain.Product{}, false
	}

	p := domain.Product{
		ID:             id,
		Title:          field(record, col, "content_title"),
		CategoryLevel1: field(record, col, "level1_category_name"),
		CategoryLevel2: field(record, col, "level2_category_name"),
		CategoryLeaf:   field(record, col, "leaf_category_name"),
		ImageURL:       field(record, col, "image_url"),
	}

	p.OriginalPrice = parseFloat(field(record, col, "original_price"))
	p.SellingPrice = parseFloat(field(record, col, "selling_price"))
	p.DiscountedPrice = parseFloat(field(record, col, "discounted_price"))
	p.ReviewCount = parseInt(field(record, col, "content_review_count"))
	p.RatingCount = parseInt(field(record, col, "content_rate_count"))
	p.MerchantCount = parseInt(field(record, col, "merchant_count"))
	p.AverageRating = parseOptionalFloat(field(record, col, "content_rate_avg"))
	p.DiscountPercentage = parseOptionalFloat(field(record, col, "discount_percentage"))

	return p, true
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	// Counts sometimes arrive as floats ("500.0") from the upstream export.
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
