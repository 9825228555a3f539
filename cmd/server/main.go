/*
main.go - server entry point

PURPOSE:
  Starts the local leave-engine server: loads configuration, opens the
  sqlite store, builds the policy registry and handler, and serves the
  REST API with graceful shutdown.

CONFIGURATION:
  Environment variables (or a .env file), see config package:
    SERVER_PORT  HTTP port (default 8080)
    DB_PATH      sqlite path, ":memory:" for in-memory (default leave.db)
    LOG_LEVEL    debug|info|warn|error (default info)
    LOG_PRETTY   console output instead of JSON (default false)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain in-flight requests
  (30s budget), close the store, exit.
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/api"
	"github.com/warp/leave-engine/config"
	"github.com/warp/leave-engine/logger"
	"github.com/warp/leave-engine/store/sqlite"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	log := logger.L()

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to open store")
	}
	defer store.Close()

	registry := accrual.NewRegistry(*log)
	handler := api.NewHandler(store, registry)
	router := api.NewRouter(handler, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("db", cfg.DB.Path).Msg("leave engine listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("stopped")
}
