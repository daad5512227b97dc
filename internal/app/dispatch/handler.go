package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/ferdypruis/go-luhn"
	"github.com/go-playground/validator/v10"

	"fulfillment/internal/app/apperr"
	"fulfillment/internal/app/logger"
	"fulfillment/internal/app/metrics"
	"fulfillment/internal/app/model"
	"fulfillment/internal/app/transact"
)

// Handler turns one inbound message into a delivery decision: validate,
// run the fulfillment sequence, publish the outcome, and map failures to
// acknowledge-vs-redeliver. All failure classification visible to the
// transport happens here and nowhere deeper.
type Handler struct {
	processor       Processor
	publisher       ReplyPublisher
	redeliveryDelay time.Duration
	validate        *validator.Validate
	logger          logger.Logger
	now             func() time.Time
}

func (h *Handler) LoggerComponent() string {
	return "Dispatch.Handler"
}

func NewHandler(processor Processor, publisher ReplyPublisher, redeliveryDelay time.Duration) *Handler {
	h := &Handler{
		processor:       processor,
		publisher:       publisher,
		redeliveryDelay: redeliveryDelay,
		validate:        validator.New(),
		logger:          logger.Global().WithComponent("Dispatch.Handler"),
		now:             time.Now,
	}
	return h
}

func (h *Handler) Handle(ctx context.Context, env *model.Envelope[transact.TransactionRequest]) Outcome {
	l := h.logger.With().Str("correlation_id", env.CorrelationID).Logger()
	ctx = l.WithContext(ctx)

	reply := &model.Envelope[model.Reply]{
		ProducerAIT:         env.ProducerAIT,
		CorrelationID:       env.CorrelationID,
		BusinessTaxonomyID:  env.BusinessTaxonomyID,
		MessageCreationTime: env.MessageCreationTime,
		Payload:             &model.Reply{Request: env.Payload},
	}

	response, err := h.process(ctx, env)
	if err == nil {
		completed := h.now()
		reply.MessageCompletionTime = &completed
		reply.Payload.Response = response
		reply.Payload.Status = model.ReplySuccess

		if perr := h.publisher.Publish(ctx, reply); perr != nil {
			l.Warn().Err(perr).Dur("redelivery_delay", h.redeliveryDelay).Msg("Reply publish failed, holding message for redelivery")
			return RedeliverAfter(h.redeliveryDelay)
		}

		metrics.SagaResults.WithLabelValues(response.Status.String()).Inc()
		l.Info().
			Str("status", response.Status.String()).
			Dur("elapsed", completed.Sub(env.MessageCreationTime)).
			Msg("Fulfillment complete")
		return Acknowledge()
	}

	if apperr.IsTransient(err) {
		l.Warn().Err(err).Dur("redelivery_delay", h.redeliveryDelay).Msg("Recoverable failure, holding message for redelivery")
		return RedeliverAfter(h.redeliveryDelay)
	}

	// Terminal, malformed or unclassified: the message is considered handled
	// once the failure text is on the reply channel.
	l.Error().Err(err).Msg("Unrecoverable failure")
	metrics.SagaResults.WithLabelValues(transact.StatusInternalError.String()).Inc()
	reply.Payload.Status = model.ReplyInternalError
	reply.Payload.Message = err.Error()

	if perr := h.publisher.Publish(ctx, reply); perr != nil {
		l.Error().Err(perr).Msg("Error reply publish failed, holding message for redelivery")
		return RedeliverAfter(h.redeliveryDelay)
	}
	return Acknowledge()
}

func (h *Handler) process(ctx context.Context, env *model.Envelope[transact.TransactionRequest]) (*transact.TransactionResponse, error) {
	if err := h.validateEnvelope(env); err != nil {
		return nil, err
	}
	return h.processor.ProcessTransaction(ctx, env, env.Payload)
}

func (h *Handler) validateEnvelope(env *model.Envelope[transact.TransactionRequest]) error {
	if err := h.validate.Struct(env); err != nil {
		return apperr.Malformed(fmt.Sprintf("malformed message: %s", err))
	}
	if card := env.Payload.DebitCardNumber; card != "" && !luhn.Valid(card) {
		return apperr.Malformed("malformed message payload: invalid debit card number")
	}
	return nil
}
