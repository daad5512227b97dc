package app

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"

	"fulfillment/internal/app/config"
	"fulfillment/internal/app/dispatch"
	"fulfillment/internal/app/kafka"
	"fulfillment/internal/app/logger"
	"fulfillment/internal/app/service/fulfillment"
	"fulfillment/internal/app/storage/postgres"
	"fulfillment/internal/app/transact"
)

type App struct {
	config    config.Config
	logger    logger.Logger
	db        *sql.DB
	consumer  *kafka.Consumer
	publisher *kafka.Publisher
}

func New(cfg config.Config, l logger.Logger, e embed.FS) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := applyMigrations(e, db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	instructions, err := postgres.NewOverdraftRepository(db)
	if err != nil {
		return nil, fmt.Errorf("overdraft repository init: %w", err)
	}

	client, err := transact.NewService(transact.Config{
		RecordURL:      cfg.Transact.RecordURL,
		ReservationURL: cfg.Transact.ReservationURL,
		TransferURL:    cfg.Transact.TransferURL,
		CommitURL:      cfg.Transact.CommitURL,
		AITID:          cfg.AITID,
		Attempts:       cfg.Transact.Attempts,
		BackoffMin:     cfg.Transact.BackoffMin,
		BackoffMax:     cfg.Transact.BackoffMax,
		ConnectTimeout: cfg.Transact.ConnectTimeout,
		RequestTimeout: cfg.Transact.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transact client init: %w", err)
	}

	publisher := kafka.NewPublisher(cfg.Kafka)
	handler := dispatch.NewHandler(fulfillment.New(instructions, client), publisher, cfg.Kafka.RedeliveryDelay)

	a := &App{
		config:    cfg,
		logger:    l,
		db:        db,
		consumer:  kafka.NewConsumer(cfg.Kafka, handler),
		publisher: publisher,
	}

	return a, nil
}

// Run consumes the request topic until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.consumer.Run(ctx)
}

func (a *App) Stop() {
	a.logger.Info().Msg("Shutting down application")
	if err := a.consumer.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Consumer close failed")
	}
	if err := a.publisher.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Publisher close failed")
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error().Err(err).Msg("DB close failed")
	}
}
