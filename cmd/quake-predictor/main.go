package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/quake-predictor/internal/api"
	"github.com/mr1hm/quake-predictor/internal/config"
	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/ingestion"
	"github.com/mr1hm/quake-predictor/internal/logging"
	"github.com/mr1hm/quake-predictor/internal/observability"
	"github.com/mr1hm/quake-predictor/internal/predictor"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// Snapshot updates fan out to SSE subscribers
	broadcaster := dataset.NewBroadcaster()
	store := dataset.NewStore(clock, broadcaster)

	// A model setup failure leaves the server up with predictions disabled
	svc := predictor.NewService(cfg.Predictor.Delay, metrics, predictor.WithClock(clock))

	mgr := ingestion.NewManager(cfg, store, metrics, clock)
	mgr.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(store, broadcaster, svc, metrics, api.Options{
		SampleSize:     cfg.Dataset.SampleSize,
		TableLimit:     cfg.Dataset.TableLimit,
		UploadMaxBytes: cfg.Dataset.UploadMaxBytes,
		Location:       cfg.Dataset.Location,
		Clock:          clock,
	})
	handler.RegisterRoutes(router)

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
	mgr.Stop()
	broadcaster.Close() // ends open event streams

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
