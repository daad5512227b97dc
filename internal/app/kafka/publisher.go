package kafka

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"

	"fulfillment/internal/app/apperr"
	"fulfillment/internal/app/config"
	"fulfillment/internal/app/logger"
	"fulfillment/internal/app/metrics"
	"fulfillment/internal/app/model"
)

// Publisher sends reply envelopes keyed by account number, so replies for
// one account land on one partition in order. Sends are synchronous and
// wait for acknowledgment from all replicas; every failure, including an
// open breaker and context interruption, is classified transient so the
// inbound message is redelivered rather than dropped.
type Publisher struct {
	writer  *kafkago.Writer
	breaker *gobreaker.CircuitBreaker
	logger  logger.Logger
}

func (p *Publisher) LoggerComponent() string {
	return "Kafka.Publisher"
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	p := &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.ReplyTopic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "kafka-reply",
		}),
	}
	p.logger = logger.Global().WithComponent(p.LoggerComponent())
	return p
}

// Publish implementation of interface dispatch.ReplyPublisher
func (p *Publisher) Publish(ctx context.Context, env *model.Envelope[model.Reply]) error {
	l := p.logger.With().Str("correlation_id", env.CorrelationID).Logger()

	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, "json encode")
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, kafkago.Message{
			Key:   []byte(partitionKey(env)),
			Value: value,
		})
	})
	if err != nil {
		metrics.ReplyFailures.Inc()
		l.Warn().Err(err).Msg("Reply produce failed")
		return apperr.Transient(errors.Wrap(err, "kafka produce"))
	}

	l.Debug().Msg("Reply produced")
	return nil
}

// partitionKey is the account number when the request made it into the
// reply, the correlation id otherwise.
func partitionKey(env *model.Envelope[model.Reply]) string {
	if env.Payload != nil && env.Payload.Request != nil {
		return env.Payload.Request.AccountNumber
	}
	return env.CorrelationID
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
