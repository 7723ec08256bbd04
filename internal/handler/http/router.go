package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/SearchGo/internal/service"
	"github.com/utafrali/SearchGo/pkg/health"
	"github.com/utafrali/SearchGo/pkg/middleware"
)

// categoryCacheMaxAge is the Cache-Control max-age for category views, which
// only change when the catalog snapshot is replaced.
const categoryCacheMaxAge = 300

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	svc *service.Service,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("search"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	searchHandler := NewSearchHandler(svc, logger)
	categoryHandler := NewCategoryHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Get("/", searchHandler.Search)
			r.Get("/suggest", searchHandler.Suggest)

			r.Post("/reindex", searchHandler.Reindex)

			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)
				r.Post("/", searchHandler.SearchPost)
				r.Post("/advanced", searchHandler.AdvancedSearch)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.CacheControl(categoryCacheMaxAge))
			r.Get("/", categoryHandler.List)
			r.Get("/grouped", categoryHandler.Grouped)
			r.Get("/popular", categoryHandler.Popular)
		})

		r.Post("/catalog/refresh", searchHandler.RefreshCatalog)
	})

	return r
}
