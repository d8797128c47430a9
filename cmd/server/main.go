package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"
	"logindash/internal/app/server/api"
	"logindash/internal/app/server/config"
	"logindash/internal/domain/login"
	"logindash/internal/infrastructure/storage/postgres"
	"logindash/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, conf.Logger.LogLevel, os.Stdout)

	if err := run(conf, log); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(conf *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, conf.DB.DatabaseURI, conf.DB.Migrations)
	if err != nil {
		return err
	}
	defer storage.Close()
	log.Info("database initialized")

	cipher, err := login.NewCipher(conf.Crypto.EncryptionSecret)
	if err != nil {
		return err
	}

	repo := postgres.NewLoginRepository(storage, log)
	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           api.New(repo, storage, cipher, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", conf.Server.RunAddress))
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

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
