package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"risk_service/internal/api"
	"risk_service/internal/config"
	"risk_service/internal/core"
	"risk_service/internal/domain/repository"
	"risk_service/internal/infrastructure/geocoder"
	"risk_service/internal/infrastructure/predclient"
	"risk_service/internal/logger"
	"risk_service/internal/queue"
	"risk_service/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.Setup()

	var db *sqlx.DB
	var history *repository.HistoryRepository
	if cfg.Database.URL != "" {
		db, err = repository.Connect(cfg.Database.URL)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		history = repository.NewHistoryRepository(db)
	} else {
		log.Info("database not configured, history disabled")
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer cache.Close()
	}

	var geo core.Geocoder
	if cfg.Geocoder.APIKey != "" {
		geo = geocoder.NewClient(
			cfg.Geocoder.APIKey,
			cfg.Geocoder.BaseURL,
			cfg.Geocoder.Timeout,
			cache,
			cfg.Geocoder.CacheTTL,
		)
	} else {
		log.Warn("geocoder API key not configured, point selection disabled")
	}

	var roads core.RoadLookup
	if cfg.Overpass.Endpoint != "" {
		roads = repository.NewRoadRepository(cfg.Overpass.Endpoint, cfg.Overpass.Timeout)
	}

	predAPI := predclient.NewClient(cfg.Prediction.BaseURL, cfg.Prediction.Timeout)
	remote := core.NewRemoteSource(predAPI)
	synthetic := core.NewSyntheticSource(time.Now().UnixNano())

	var recorder core.ResolutionRecorder
	if history != nil {
		recorder = history
	}
	resolver := core.NewResolver(geo, remote, synthetic, core.ResolverOptions{
		Roads:                roads,
		Recorder:             recorder,
		NearbyCount:          cfg.Resolver.NearbyCount,
		FailureMessage:       cfg.Resolver.FailureMessage,
		HourlyFailureMessage: cfg.Resolver.HourlyFailureMessage,
		Logger:               log,
	})

	var publisher *queue.Publisher
	if cfg.Kafka.Enabled() {
		publisher = queue.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer publisher.Close()
	}

	hub := ws.NewHub(log)
	go hub.Run()

	var pub api.ResolutionPublisher
	if publisher != nil {
		pub = publisher
	}
	var lister api.HistoryLister
	if history != nil {
		lister = history
	}
	handler := api.NewHandler(resolver, core.NewSelectionStore(), lister, pub, hub, log)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(handler, log),
	}

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
