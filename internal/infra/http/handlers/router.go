package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads    *LeadHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
	Health   *HealthHandler
	Sessions middleware.SessionValidator

	CORSOrigins []string
	RequestLog  bool
	Logger      *zap.Logger
}

// NewRouter mounts the public intake, the login endpoint and the guarded
// admin API.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.RequestLog {
		r.Use(chimiddleware.Logger)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads", cfg.Leads.CaptureLead)
		r.Post("/auth/login", cfg.Auth.Login)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireSession(cfg.Sessions, cfg.Logger.Named("session")))
			r.Get("/leads", cfg.Admin.ListLeads)
			r.Get("/leads/export", cfg.Admin.ExportLeads)
			r.Get("/leads/hidden", cfg.Admin.ListHiddenLeads)
			r.Patch("/leads/{id}", cfg.Admin.UpdateLead)
		})
	})

	return r
}
