package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/adoption-service/internal/api/http"
	"github.com/spec-kit/adoption-service/internal/api/http/handlers"
	"github.com/spec-kit/adoption-service/internal/auth"
	"github.com/spec-kit/adoption-service/internal/cache"
	"github.com/spec-kit/adoption-service/internal/config"
	"github.com/spec-kit/adoption-service/internal/events"
	"github.com/spec-kit/adoption-service/internal/observability"
	"github.com/spec-kit/adoption-service/internal/persistence"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/repository/memory"
	"github.com/spec-kit/adoption-service/internal/service"
	"github.com/spec-kit/adoption-service/internal/storage"
	"github.com/spec-kit/adoption-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo    repository.UserRepository
		petRepo     repository.PetRepository
		requestRepo repository.AdoptionRequestRepository
		offerRepo   repository.AdoptionOfferRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		petRepo = repository.NewPetRepository(pool)
		requestRepo = repository.NewAdoptionRequestRepository(pool)
		offerRepo = repository.NewAdoptionOfferRepository(pool)
	} else {
		logger.Warn("running with in-memory repositories; data will not survive restarts")
		requests := memory.NewAdoptionRequestRepository()
		offers := memory.NewAdoptionOfferRepository()
		userRepo = memory.NewUserRepository()
		petRepo = memory.NewPetRepository(requests, offers)
		requestRepo = requests
		offerRepo = offers
	}

	photos, err := storage.NewPhotoStore(cfg.Storage.PhotoDir, cfg.Storage.PhotoBaseURL)
	if err != nil {
		logger.Fatal("failed to init photo store", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	denylist := auth.NewRedisDenylist(redis.Client)
	offerCache := cache.NewOfferCache(redis.Client)

	authService := service.NewAuthService(cfg.Auth, userRepo, denylist)
	petService := service.NewPetService(petRepo, photos)
	requestService := service.NewAdoptionRequestService(requestRepo, petRepo, userRepo, dispatcher)
	offerService := service.NewAdoptionOfferService(offerRepo, petRepo, offerCache, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, denylist)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{BodyLimit: storage.MaxPhotoBytes + 1<<20})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Pets:           handlers.NewPetsHandler(petService),
		Requests:       handlers.NewAdoptionRequestsHandler(requestService, petService),
		Offers:         handlers.NewAdoptionOffersHandler(offerService, petService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
