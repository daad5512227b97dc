package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/internal/app/app"
	"fulfillment/internal/app/config"
	"fulfillment/internal/app/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	// setting up signal capturing
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		osCall := <-stop
		logger.Global().Info().Str("signal", fmt.Sprintf("%+v", osCall)).Msg("System call")
		cancel()
	}()

	c := config.New()
	if err := c.Load(); err != nil {
		logger.Global().Fatal().Err(err).Msg("Config load failed")
	}

	if err := runWorker(ctx, c); err != nil {
		logger.Global().Fatal().Err(err).Msg("Worker run failed")
	}
}

func runWorker(ctx context.Context, c config.Config) (err error) {
	l := logger.New(c.LogVerbose, c.LogPretty)

	a, err := app.New(c, l, embedMigrations)
	if err != nil {
		return fmt.Errorf("app init: %w", err)
	}
	defer a.Stop()

	srv := &http.Server{
		Addr:         c.Ops.Listen,
		Handler:      a.Router(),
		ReadTimeout:  c.Ops.TimeoutRead,
		WriteTimeout: c.Ops.TimeoutWrite,
		IdleTimeout:  c.Ops.TimeoutIdle,
	}

	go func() {
		l.Info().Str("listen_address", c.Ops.Listen).Msg("Serving operational endpoints")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("")
		}
	}()

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- a.Run(ctx)
	}()

	l.Info().Msg("Worker started")
	select {
	case err = <-consumerDone:
		if err != nil {
			return fmt.Errorf("consumer: %w", err)
		}
	case <-ctx.Done():
		l.Info().Msg("Worker stopping")
		if err = <-consumerDone; err != nil {
			return fmt.Errorf("consumer: %w", err)
		}
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if err = srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	l.Printf("Worker exited properly")

	return
}
