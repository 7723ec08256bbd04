package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/utafrali/SearchGo/internal/service"
	apperrors "github.com/utafrali/SearchGo/pkg/errors"
	"github.com/utafrali/SearchGo/pkg/httputil"
)

// CategoryHandler serves the derived category views.
type CategoryHandler struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewCategoryHandler creates the category handler.
func NewCategoryHandler(svc *service.Service, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.Categories()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: nodes})
}

// Grouped handles GET /api/v1/categories/grouped.
func (h *CategoryHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.GroupedCategories()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: groups})
}

// Popular handles GET /api/v1/categories/popular?limit=<n>.
func (h *CategoryHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("limit must be an integer"), h.logger)
			return
		}
		limit = n
	}

	popular, err := h.svc.PopularCategories(limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: popular})
}
