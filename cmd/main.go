package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"google.golang.org/api/option"

	"mentor-payments/config"
	"mentor-payments/internal/app"
	"mentor-payments/internal/services/payments/handler"
	"mentor-payments/internal/services/payments/providers"
	"mentor-payments/internal/store"
)

func main() {
	var cfg config.AppConfig

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Panicf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			slog.Error("failed to initialize New Relic", "error", err)
		} else {
			slog.Info("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	var fsOpts []option.ClientOption
	if cfg.Firestore.CredentialsFile != "" {
		fsOpts = append(fsOpts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
	}
	fsClient, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, fsOpts...)
	if err != nil {
		log.Fatalf("failed to create firestore client: %v", err)
	}
	defer fsClient.Close()
	slog.Info("connected to Firestore", "project", cfg.Firestore.ProjectID)

	mentorStore := store.NewFirestoreMentorStore(fsClient, cfg.Firestore.MentorsCollection)
	stripeProvider := providers.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	paymentsHandler := handler.NewHandler(stripeProvider, mentorStore, cfg.Payments)

	router := app.NewRouter(app.RouterDeps{
		PaymentsHandler: paymentsHandler,
		NewRelicApp:     nrApp,
	})

	server := &http.Server{
		Addr:         cfg.Http.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Http.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	slog.Info("server exited")
}
