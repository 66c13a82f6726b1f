package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/communityevents/backend/internal/config"
	"github.com/communityevents/backend/internal/db"
	httpx "github.com/communityevents/backend/internal/http"
	"github.com/communityevents/backend/internal/observability"
	"github.com/communityevents/backend/internal/redisclient"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env before anything reads the environment
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing
	shutdownTracer, err := observability.InitTracer(context.Background(), "events-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// document store
	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	ctx, cancel := config.WithTimeout(5 * time.Second)
	err = db.EnsureSchema(ctx, pool)
	cancel()

	if err != nil {
		log.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	// redis backs the movie-metadata cache; the API runs without it
	var rdb *redis.Client

	rc := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, pingCancel := config.WithTimeout(2 * time.Second)
	err = rc.Ping(pingCtx)
	pingCancel()

	if err != nil {
		log.Warn("redis unavailable, movie cache disabled", "err", err)
	} else {
		rdb = rc.Raw()
		defer rc.Close()
	}

	// metrics
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	metrics := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	router := httpx.NewRouter(log, cfg, pool, rdb, prom, metrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		err = shutdownTracer(ctx)

		if err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
