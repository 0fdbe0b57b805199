package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"anichart/internal/config"
	"anichart/internal/db"
	apihttp "anichart/internal/http"
	"anichart/internal/images"
	"anichart/internal/repository"
	"anichart/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// La conexión al store es el único recurso fatal: si falla el
	// arranque, el proceso termina en vez de servir con un handle a
	// medio inicializar.
	client, err := db.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	characterRepo := repository.NewMongoCharacterRepository(db.Collection(client, cfg))
	imageStore := images.NewDirStore(cfg.ImagesDir)

	var statsCache *service.StatsCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, stats cache disabled", zap.Error(err))
			_ = redisClient.Close()
		} else {
			statsCache = service.NewStatsCache(redisClient, time.Duration(cfg.StatsCacheTTL)*time.Second)
		}
		cancel()
	}

	characterSvc := service.NewCharacterService(logger, characterRepo, imageStore, statsCache)
	statsSvc := service.NewStatsService(characterRepo, statsCache)

	characterHandler := apihttp.NewCharacterHandler(logger, characterSvc)
	statsHandler := apihttp.NewStatsHandler(logger, statsSvc)
	router := apihttp.NewRouter(logger, characterHandler, statsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
