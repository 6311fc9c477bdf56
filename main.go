package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iniva-cms/app"
	"iniva-cms/config"
	"iniva-cms/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	ctx := context.Background()

	publicCache, err := app.OpenCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init cache")
	}
	defer publicCache.Close()

	store, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init storage")
	}

	a := app.New(cfg, db, publicCache, store)
	if err := a.Bootstrap(cfg); err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{"port": cfg.Port, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
