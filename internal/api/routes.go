package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/adblend/internal/config"
)

// SetupRoutes configures the router: standard middleware, CORS, health,
// and the /api route tree.
func SetupRoutes(h *Handlers, corsCfg config.CORSConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	origins := corsCfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Route("/{clientID}", func(r chi.Router) {
				r.Get("/", h.GetClient)
				r.Put("/", h.UpdateClient)
				r.Delete("/", h.DeleteClient)
				r.Get("/sources", h.ListClientSources)
				r.Get("/warehouses", h.ListClientWarehouses)
				r.Get("/reports", h.ListClientReports)
				r.Get("/alerts", h.ListClientAlerts)
			})
		})

		r.Route("/sources", func(r chi.Router) {
			r.Post("/", h.CreateSource)
			r.Route("/{sourceID}", func(r chi.Router) {
				r.Get("/", h.GetSource)
				r.Delete("/", h.DeleteSource)
				r.Post("/sync", h.MarkSourceSynced)
			})
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Post("/", h.CreateWarehouse)
			r.Route("/{warehouseID}", func(r chi.Router) {
				r.Get("/", h.GetWarehouse)
				r.Put("/", h.UpdateWarehouse)
				r.Delete("/", h.DeleteWarehouse)
				r.Post("/preview", h.PreviewWarehouse)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", h.CreateReport)
			r.Route("/{reportID}", func(r chi.Router) {
				r.Get("/", h.GetReport)
				r.Put("/", h.UpdateReport)
				r.Delete("/", h.DeleteReport)
				r.Get("/preview", h.PreviewReport)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Post("/", h.CreateAlert)
			r.Route("/{alertID}", func(r chi.Router) {
				r.Get("/", h.GetAlert)
				r.Delete("/", h.DeleteAlert)
				r.Post("/evaluate", h.EvaluateAlert)
			})
		})

		r.Route("/blend", func(r chi.Router) {
			r.Post("/preview", h.BlendPreview)
			r.Get("/platforms", h.ListPlatforms)
			r.Get("/columns", h.ListColumns)
		})
	})

	return r
}
