package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/playbook-leads/internal/config"
	"github.com/xavierca1/playbook-leads/internal/infra/database"
	"github.com/xavierca1/playbook-leads/internal/infra/http/handlers"
	"github.com/xavierca1/playbook-leads/internal/infra/mail"
	"github.com/xavierca1/playbook-leads/internal/infra/queue"
	"github.com/xavierca1/playbook-leads/internal/infra/worker"
	"github.com/xavierca1/playbook-leads/internal/logger"
	"github.com/xavierca1/playbook-leads/internal/usecase"
)

var version = "dev"

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.ApplyMigrations(ctx, db); err != nil {
		return err
	}
	log.Info("migrations applied")

	sessions, err := newSessionStore(cfg, log)
	if err != nil {
		return err
	}

	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	sender.PlaybookURL = cfg.PlaybookURL

	// Onboarding goes through RabbitMQ when configured, inline otherwise.
	var (
		notifier usecase.OnboardingNotifier = mail.Notifier{Sender: sender}
		rabbit   *queue.RabbitMQ
	)
	if cfg.RabbitMQURL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		notifier = queue.NewProducer(rabbit.Ch)
		log.Info("onboarding queue enabled", zap.String("queue", queue.QueueName))
	}

	router := handlers.NewRouter(buildRouterConfig(cfg, db, sessions, notifier, rabbit, log))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if rabbit != nil {
		onboarding := queue.NewWorker(rabbit.Ch, sender, log.Named("onboarding"))
		g.Go(func() error {
			return onboarding.Start(gctx, queue.QueueName)
		})
	}

	pipeline := worker.NewPipelineWorker(database.NewLeadRepository(db), log.Named("pipeline"))
	g.Go(func() error {
		return pipeline.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
