package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/salesops-hq/backend/internal/config"
	"github.com/salesops-hq/backend/internal/db"
	httpapi "github.com/salesops-hq/backend/internal/http"
	"github.com/salesops-hq/backend/internal/identity"
	"github.com/salesops-hq/backend/internal/records"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "salesops-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var source records.Source
	if cfg.RecordsURL == "" {
		source = records.StoreSource{Store: store}
		logger.Info().Msg("serving metrics from local activity store")
	} else {
		source = records.HTTPSource{BaseURL: cfg.RecordsURL}
		logger.Info().Str("url", cfg.RecordsURL).Msg("serving metrics from remote feed")
	}

	var provider identity.Provider
	if cfg.IdentityURL == "" {
		provider = identity.MockProvider{}
		logger.Info().Msg("using mock identity provider")
	} else {
		provider = identity.HTTPProvider{BaseURL: cfg.IdentityURL}
	}

	router := httpapi.Router(cfg, store, source, provider, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
