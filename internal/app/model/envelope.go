package model

import (
	"time"

	"fulfillment/internal/app/transact"
)

// Envelope wraps every inbound request and outbound reply with the trace
// fields carried across systems. All trace fields are required on intake;
// the completion time is stamped exactly once, at terminal success.
type Envelope[T any] struct {
	ProducerAIT           string     `json:"producerAit" validate:"required"`
	CorrelationID         string     `json:"correlationId" validate:"required"`
	BusinessTaxonomyID    string     `json:"businessTaxonomyId" validate:"required"`
	MessageCreationTime   time.Time  `json:"messageCreationTime" validate:"required"`
	MessageCompletionTime *time.Time `json:"messageCompletionTime,omitempty"`
	Payload               *T         `json:"payload" validate:"required"`
}

// Trace returns the identifiers attached to every downstream call made on
// behalf of this message.
func (e *Envelope[T]) Trace() transact.Trace {
	return transact.Trace{
		CorrelationID:      e.CorrelationID,
		BusinessTaxonomyID: e.BusinessTaxonomyID,
	}
}

// ReplyStatus is the publish-layer outcome, distinct from the transaction
// response status inside the payload.
type ReplyStatus int

const (
	ReplySuccess       ReplyStatus = 0
	ReplyInternalError ReplyStatus = 1
)

// Reply is the outbound envelope payload.
type Reply struct {
	Request  *transact.TransactionRequest  `json:"request"`
	Response *transact.TransactionResponse `json:"response,omitempty"`
	Status   ReplyStatus                   `json:"status"`
	Message  string                        `json:"message,omitempty"`
}
