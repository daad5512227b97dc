//go:generate mockgen -source=./interface.go -destination=./mock/dispatch.go -package=dispatchmock
package dispatch

import (
	"context"

	"fulfillment/internal/app/model"
	"fulfillment/internal/app/transact"
)

// Processor runs the fulfillment sequence for one validated request.
type Processor interface {
	ProcessTransaction(ctx context.Context, env *model.Envelope[transact.TransactionRequest], request *transact.TransactionRequest) (*transact.TransactionResponse, error)
}

// ReplyPublisher sends one outcome envelope to the reply channel and waits
// for the broker to acknowledge it.
type ReplyPublisher interface {
	Publish(ctx context.Context, env *model.Envelope[model.Reply]) error
}
