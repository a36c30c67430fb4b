package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coastalwatch/hazard-engine/internal/alerting"
	"github.com/coastalwatch/hazard-engine/internal/api"
	"github.com/coastalwatch/hazard-engine/internal/config"
	"github.com/coastalwatch/hazard-engine/internal/feed"
	"github.com/coastalwatch/hazard-engine/internal/logging"
	"github.com/coastalwatch/hazard-engine/internal/observability"
	"github.com/coastalwatch/hazard-engine/internal/predcache"
	"github.com/coastalwatch/hazard-engine/internal/predictor"
	"github.com/coastalwatch/hazard-engine/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(os.Stdout, cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	cache := predcache.New(clock)

	monitor := alerting.NewMonitor(db, clock, rand.New(rand.NewSource(cfg.Feed.Seed)), metrics)

	var predict *predictor.Client
	if cfg.Predictor.Enabled {
		predict = predictor.New(cfg.Predictor.URL, cfg.Predictor.Timeout)
		slog.Info("external cyclone predictor enabled", "url", cfg.Predictor.URL)
	}

	intervals := feed.Intervals{
		Cyclone:        cfg.Feed.CycloneInterval,
		StormSurge:     cfg.Feed.StormSurgeInterval,
		CoastalErosion: cfg.Feed.CoastalErosionInterval,
		WaterPollution: cfg.Feed.WaterPollutionInterval,
	}
	feeds := feed.NewManager(intervals, monitor, predict, cache, metrics, clock, cfg.Feed.Seed)
	feeds.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.RateLimit.RPS))

	handler := api.NewHandler(db, monitor, cache, feeds, cfg.Feed.Seed+1000)
	handler.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	feeds.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
