package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/utafrali/SearchGo/internal/domain"
	"github.com/utafrali/SearchGo/internal/service"
	apperrors "github.com/utafrali/SearchGo/pkg/errors"
	"github.com/utafrali/SearchGo/pkg/httputil"
	"github.com/utafrali/SearchGo/pkg/validator"
)

// SearchHandler serves the search, suggestion and indexing endpoints.
type SearchHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewSearchHandler creates the search handler.
func NewSearchHandler(svc *service.Service, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, logger: logger}
}

// searchRequest is the POST body for search endpoints.
type searchRequest struct {
	Query          string   `json:"query"`
	Limit          int      `json:"limit" validate:"gte=0,lte=1000"`
	Mode           string   `json:"mode" validate:"omitempty,oneof=similarity structured"`
	CategoryLevel2 []string `json:"category_level2_list"`
	MinPrice       *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice       *float64 `json:"max_price" validate:"omitempty,gte=0"`
	MinRating      *float64 `json:"min_rating" validate:"omitempty,gte=0,lte=5"`
	MinReviewCount *int     `json:"min_review_count" validate:"omitempty,gte=0"`
}

func (req *searchRequest) toQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Text:  strings.TrimSpace(req.Query),
		Limit: req.Limit,
		Mode:  req.Mode,
		Filters: domain.FilterSet{
			CategoryLevel2: req.CategoryLevel2,
			MinPrice:       req.MinPrice,
			MaxPrice:       req.MaxPrice,
			MinRating:      req.MinRating,
			MinReviewCount: req.MinReviewCount,
		},
	}
}

// Search handles GET /api/v1/search. Query parameters: q, limit, mode.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := domain.SearchQuery{
		Text: strings.TrimSpace(r.URL.Query().Get("q")),
		Mode: r.URL.Query().Get("mode"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("limit must be an integer"), h.logger)
			return
		}
		q.Limit = limit
	}

	result, err := h.svc.Search(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// SearchPost handles POST /api/v1/search with the query in the body.
func (h *SearchHandler) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.svc.Search(r.Context(), req.toQuery())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// AdvancedSearch handles POST /api/v1/search/advanced. Same body as the plain
// search, but the mode defaults to similarity ranking.
func (h *SearchHandler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Mode == "" {
		req.Mode = domain.ModeSimilarity
	}

	result, err := h.svc.Search(r.Context(), req.toQuery())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// suggestResponse wraps the suggestion list with its originating prefix.
type suggestResponse struct {
	Prefix      string                  `json:"prefix"`
	Suggestions []domain.SuggestionItem `json:"suggestions"`
	Total       int                     `json:"total"`
}

// Suggest handles GET /api/v1/search/suggest?q=<prefix>. Always 200: short or
// unmatched prefixes return an empty list.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	items := h.svc.Suggest(r.Context(), prefix)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: suggestResponse{
		Prefix:      strings.TrimSpace(prefix),
		Suggestions: items,
		Total:       len(items),
	}})
}

// Reindex handles POST /api/v1/search/reindex.
func (h *SearchHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Reindex(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}

// RefreshCatalog handles POST /api/v1/catalog/refresh. The snapshot is
// reloaded synchronously; the index rebuild runs as part of the same request
// so the caller sees a fully consistent state on 200.
func (h *SearchHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RefreshCatalog(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	stats, err := h.svc.Reindex(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"refreshed":          true,
		"total_products":     snap.Len(),
		"catalog_generation": snap.Generation(),
		"index":              stats,
	}})
}
