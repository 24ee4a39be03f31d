package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare-web/internal/adapters/auth/jwtpayload"
	"petcare-web/internal/platform/config"
	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/platform/logger"
	"petcare-web/internal/router"

	"go.uber.org/zap"
)

// @title        PetCare Web
// @version      1.0
// @description  Endpoints JSON del frontend PetCare.
// @BasePath     /
func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		AppName: cfg.Log.AppName,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  log.Named("backend"),
	})
	if err != nil {
		return err
	}

	store, closeStore, err := router.OpenSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("close session store", zap.Error(err))
		}
	}()

	h, err := router.NewRouter(router.Options{
		Logger:       log,
		Backend:      backend,
		Store:        store,
		Decoder:      jwtpayload.NewDecoder(),
		CookieSecure: cfg.HTTP.CookieSecure,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
