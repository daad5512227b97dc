package kafka

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	kafkago "github.com/segmentio/kafka-go"

	"fulfillment/internal/app/config"
	"fulfillment/internal/app/dispatch"
	"fulfillment/internal/app/logger"
	"fulfillment/internal/app/metrics"
	"fulfillment/internal/app/model"
	"fulfillment/internal/app/transact"
)

// Handler decides the fate of one delivered message.
type Handler interface {
	Handle(ctx context.Context, env *model.Envelope[transact.TransactionRequest]) dispatch.Outcome
}

// Consumer reads the request topic one message at a time with manual offset
// commits. A message is committed only once the handler acknowledges it; a
// redeliver decision keeps the offset where it is, waits out the delay and
// hands the same message to the handler again. Backpressure is expressed by
// withholding the commit, never by dropping.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  logger.Logger
}

func (c *Consumer) LoggerComponent() string {
	return "Kafka.Consumer"
}

func NewConsumer(cfg config.KafkaConfig, handler Handler) *Consumer {
	c := &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  cfg.Brokers,
			GroupID:  cfg.GroupID,
			Topic:    cfg.RequestTopic,
			MinBytes: 1,
			MaxBytes: 1 << 20,
		}),
		handler: handler,
	}
	c.logger = logger.Global().WithComponent(c.LoggerComponent())
	return c
}

// Run consumes until the context is cancelled or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info().Str("topic", c.reader.Config().Topic).Msg("Consuming")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "fetch message")
		}

		c.process(ctx, msg)

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg kafkago.Message) {
	l := c.logger.With().
		Str("delivery_id", xid.New().String()).
		Str("key", string(msg.Key)).
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Logger()
	ctx = l.WithContext(ctx)

	// A payload that does not decode still flows through the handler: it
	// fails validation there and ends up on the error-reply path rather
	// than being silently skipped.
	var env model.Envelope[transact.TransactionRequest]
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		l.Error().Err(err).Msg("Undecodable message")
	}

	for {
		outcome := c.handler.Handle(ctx, &env)
		if outcome.Acknowledged() {
			metrics.Deliveries.WithLabelValues("acknowledge").Inc()
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				l.Error().Err(err).Msg("Offset commit failed")
			}
			return
		}

		metrics.Deliveries.WithLabelValues("redeliver").Inc()
		l.Warn().Dur("delay", outcome.Delay()).Msg("Delaying redelivery")
		select {
		case <-ctx.Done():
			return
		case <-time.After(outcome.Delay()):
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
