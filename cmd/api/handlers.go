package main

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/config"
	"github.com/xavierca1/playbook-leads/internal/infra/database"
	"github.com/xavierca1/playbook-leads/internal/infra/http/handlers"
	"github.com/xavierca1/playbook-leads/internal/infra/http/middleware"
	"github.com/xavierca1/playbook-leads/internal/infra/queue"
	"github.com/xavierca1/playbook-leads/internal/infra/session"
	"github.com/xavierca1/playbook-leads/internal/usecase"
)

// newSessionStore picks Redis when REDIS_URL is set and signed cookies
// otherwise.
func newSessionStore(cfg config.Config, log *zap.Logger) (session.Store, error) {
	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		log.Info("sessions stored in redis")
		return store, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := session.NewJWTStore(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	log.Info("sessions use signed cookies")
	return store, nil
}

// buildRouterConfig wires repositories, use cases and handlers.
func buildRouterConfig(
	cfg config.Config,
	db *sql.DB,
	sessions session.Store,
	notifier usecase.OnboardingNotifier,
	rabbit *queue.RabbitMQ,
	log *zap.Logger,
) handlers.RouterConfig {
	leadRepo := database.NewLeadRepository(db)
	adminRepo := database.NewAdminRepository(db)
	metrics := middleware.PrometheusLeadMetrics{}

	createLead := usecase.NewCreateLeadUseCase(leadRepo, notifier, metrics, log.Named("create_lead"))
	listLeads := usecase.NewListLeadsUseCase(leadRepo, log.Named("list_leads"))
	updateLead := usecase.NewUpdateLeadUseCase(leadRepo, metrics, log.Named("update_lead"))
	login := usecase.NewLoginUseCase(adminRepo, sessions, log.Named("login"))

	deps := map[string]handlers.Pinger{
		"database": handlers.PingFunc(db.PingContext),
		"redis":    nil,
		"rabbitmq": nil,
	}
	if p, ok := sessions.(handlers.Pinger); ok {
		deps["redis"] = p
	}
	if rabbit != nil {
		deps["rabbitmq"] = handlers.PingFunc(func(context.Context) error {
			if !rabbit.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		})
	}

	return handlers.RouterConfig{
		Leads:       handlers.NewLeadHandler(createLead, log.Named("leads")),
		Admin:       handlers.NewAdminHandler(listLeads, updateLead, log.Named("admin")),
		Auth:        handlers.NewAuthHandler(login, sessions.TTL(), cfg.IsProduction(), log.Named("auth")),
		Health:      handlers.NewHealthHandler(version, deps),
		Sessions:    sessions,
		CORSOrigins: cfg.CORSOrigins,
		RequestLog:  !cfg.IsProduction(),
		Logger:      log.Named("http"),
	}
}
