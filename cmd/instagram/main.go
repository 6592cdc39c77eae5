package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/semjuel/instagram/internal/application/access"
	"github.com/semjuel/instagram/internal/application/collection"
	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/config"
	"github.com/semjuel/instagram/internal/feed"
	infraauth "github.com/semjuel/instagram/internal/infrastructure/auth"
	httprouter "github.com/semjuel/instagram/internal/infrastructure/http"
	"github.com/semjuel/instagram/internal/infrastructure/http/handlers"
	"github.com/semjuel/instagram/internal/infrastructure/http/middleware"
	"github.com/semjuel/instagram/internal/infrastructure/imagefetch"
	"github.com/semjuel/instagram/internal/infrastructure/persistence/postgres"
	"github.com/semjuel/instagram/internal/infrastructure/queue"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	orgRepo := postgres.NewOrganizationRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	mediaRepo := postgres.NewMediaRepository(pool)

	imageFetcher := imagefetch.NewFetcher(mediaRepo, time.Duration(cfg.ImageFetch.TimeoutSecs)*time.Second, log)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, imageFetcher, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	pemBytes, err := cfg.LoadJWTPublicKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT public key")
	}
	publicKey, err := infraauth.LoadRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT public key")
	}
	verifier := infraauth.NewTokenVerifier(publicKey, cfg.Auth.Issuer, cfg.Auth.Audience)

	feedClient := feed.NewClient(cfg.Feed.Endpoint, time.Duration(cfg.Feed.TimeoutSecs)*time.Second)
	accessValidator := access.NewValidator(orgRepo, projectRepo, collectionRepo)
	createCollectionUC := collection.NewCreateCollection(accessValidator, collectionRepo, feedClient, taskEnqueuer, log)
	collectionsHandler := handlers.NewCollectionsHandler(createCollectionUC, userRepo, log)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)
	requireJWT := middleware.NewAuthValidator(verifier).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		CollectionsHandler: collectionsHandler,
		HealthHandler:      healthHandler,
		RequireJWT:         requireJWT,
		Log:                log,
		Secure:             secureMiddleware,
		IPRateLimit:        ipLimit,
		CORS:               corsMiddleware,
		APIVersion:         "1",
		Metrics:            true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
