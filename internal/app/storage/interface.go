//go:generate mockgen -source=./interface.go -destination=./mock/storage.go -package=storagemock
package storage

import (
	"context"

	"fulfillment/internal/app/model"
)

type OverdraftRepository interface {
	// GetOverdraftInstructions returns the overdraft coverage rules for the
	// account, each joined with its target account's current lifecycle
	// status. Rows come back in database order; no ordering is guaranteed.
	GetOverdraftInstructions(ctx context.Context, accountNumber string) ([]*model.OverdraftInstruction, error)
}
