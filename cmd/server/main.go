// Package main provides a local HTTP server for development and testing.
// It exposes the same handlers the Lambda functions run, under the paths the
// frontend calls.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"compatibility-engine/internal/config"
	"compatibility-engine/internal/handlers"
	"compatibility-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()
	logger := utils.GetLogger()

	deps, err := handlers.NewDependencies(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", utils.Error(err))
	}
	defer deps.Close()

	matches := handlers.NewMatchesHandler(deps.Matcher, cfg.RequestTimeout)
	details := handlers.NewMatchDetailsHandler(deps.Matcher, cfg.RequestTimeout)
	health := deps.HealthHandler()

	mux := http.NewServeMux()
	mux.Handle("/functions/v1/get_matches", handlers.HTTPHandler(matches.Handle))
	mux.Handle("/functions/v1/get_match_details", handlers.HTTPHandler(details.Handle))
	mux.Handle("/health", handlers.HTTPHandler(health.Handle))
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(health.Check(r.Context()))
	})
	mux.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	})

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Compatibility engine API server listening",
			utils.String("addr", addr),
			utils.String("stage", cfg.Stage),
			utils.Bool("cache", deps.Cache != nil))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", utils.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", utils.Error(err))
	}
	logger.Info("Server stopped")
}
