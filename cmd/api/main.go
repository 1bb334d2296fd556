package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	"tournament-backend/infrastructure/messaging"
	"tournament-backend/infrastructure/persistence"
	"tournament-backend/interfaces/http/rest"
	"tournament-backend/interfaces/http/rest/controllers"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	container, err := buildContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to boot composition root", zap.Error(err))
	}

	router := rest.NewRouter(container, cfg)
	handler, err := router.Setup(ctx)
	if err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("bootMode", cfg.BootMode),
			zap.String("persistenceDriver", cfg.PersistenceDriver),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}

// buildContainer assembles the composition root: registrations first, then
// boot according to the configured mode
func buildContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*di.Container, error) {
	bootstrapper := di.NewBootstrapper(di.BootMode(cfg.BootMode), logger)

	if err := bootstrapper.RegisterServices(
		di.AddLogger(logger),
		persistence.AddRepositories(cfg),
		persistence.AddQueries(cfg),
		messaging.AddEventPublisher(cfg),
	); err != nil {
		return nil, err
	}

	if err := bootstrapper.RegisterControllers(controllers.AddControllers(cfg)); err != nil {
		return nil, err
	}

	return bootstrapper.Boot(ctx)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
