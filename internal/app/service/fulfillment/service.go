//go:generate mockgen -source=./service.go -destination=./mock/fulfillment.go -package=fulfillmentmock
package fulfillment

import (
	"context"
	"time"

	"fulfillment/internal/app/logger"
	"fulfillment/internal/app/model"
	"fulfillment/internal/app/storage"
	"fulfillment/internal/app/transact"
)

// TransactionClient is the retry-wrapped caller of the four downstream
// transaction operations.
type TransactionClient interface {
	RecordTransaction(ctx context.Context, trace transact.Trace, in *transact.TransactionRequest) (*transact.TransactionResponse, error)
	RecordReservation(ctx context.Context, trace transact.Trace, in *transact.ReservationRequest) (*transact.ReservationResponse, error)
	TransferAndTransact(ctx context.Context, trace transact.Trace, in *transact.TransferAndTransactRequest) (*transact.TransferAndTransactResponse, error)
	CommitReservation(ctx context.Context, trace transact.Trace, in *transact.CommitReservationRequest) (*transact.CommitReservationResponse, error)
}

// Service coordinates the fulfillment of one transaction request as a
// sequence of independently-committed downstream calls. It owns no state
// across invocations and never catches or reclassifies errors: every
// downstream failure aborts the sequence and propagates to the caller
// unmodified.
type Service struct {
	instructions storage.OverdraftRepository
	client       TransactionClient
	logger       logger.Logger
	now          func() time.Time
}

func (s *Service) LoggerComponent() string {
	return "Fulfillment.Service"
}

func New(instructions storage.OverdraftRepository, client TransactionClient) *Service {
	s := &Service{
		instructions: instructions,
		client:       client,
		logger:       logger.Global().WithComponent("Fulfillment.Service"),
		now:          time.Now,
	}
	return s
}

// ProcessTransaction posts the request against its account and, when funds
// are insufficient and the request allows it, attempts to cover the
// shortfall through the account's overdraft instructions before
// re-attempting. The returned response accumulates every ledger event in
// call order.
func (s *Service) ProcessTransaction(ctx context.Context, env *model.Envelope[transact.TransactionRequest], request *transact.TransactionRequest) (*transact.TransactionResponse, error) {
	l := s.logger.With().
		Str("correlation_id", env.CorrelationID).
		Str("request_id", request.RequestID.String()).
		Logger()
	ctx = l.WithContext(ctx)
	trace := env.Trace()

	response, err := s.client.RecordTransaction(ctx, trace, request)
	if err != nil {
		return nil, err
	}

	if response.Status != transact.StatusInsufficientFunds || !request.ProtectAgainstOverdraft {
		return response, nil
	}

	l.Debug().Msg("Insufficient funds, starting overdraft coverage")

	reservations, err := s.coverOverdraft(ctx, trace, request)
	if err != nil {
		return nil, err
	}
	response.Transactions = append(response.Transactions, reservations...)

	last := lastResource(reservations)
	if last == nil || last.TypeCode != transact.TypeReservation {
		response.Status = transact.StatusInsufficientFunds
		return response, nil
	}

	transfer, err := s.client.TransferAndTransact(ctx, trace, &transact.TransferAndTransactRequest{
		TransferReservation: last,
		TransactionRequest:  request,
	})
	if err != nil {
		return nil, err
	}
	response.Transactions = append(response.Transactions, transfer.Transactions...)

	// The reservation's transaction id doubles as the commit request id:
	// transaction ids are generated by the downstream service, never by
	// clients, so reusing it keeps the commit idempotent across redeliveries.
	commit, err := s.client.CommitReservation(ctx, trace, &transact.CommitReservationRequest{
		RequestID:         last.TransactionID,
		ReservationID:     last.TransactionID,
		TransactionAmount: last.TransactionAmount,
		Metadata:          last.Metadata,
	})
	if err != nil {
		return nil, err
	}
	response.Transactions = append(response.Transactions, commit.Resource)
	response.Status = transact.StatusSuccess

	return response, nil
}

// coverOverdraft walks the account's overdraft instructions in returned
// order and reserves funds against the first effective one that has them.
// Every reservation attempt, including rejected ones, ends up in the
// returned sequence.
func (s *Service) coverOverdraft(ctx context.Context, trace transact.Trace, request *transact.TransactionRequest) ([]*transact.TransactionResource, error) {
	l := logger.Ctx(ctx)

	instructions, err := s.instructions.GetOverdraftInstructions(ctx, request.AccountNumber)
	if err != nil {
		return nil, err
	}

	reservation := &transact.ReservationRequest{
		RequestID:         request.RequestID,
		DebitCardNumber:   request.DebitCardNumber,
		TransactionAmount: request.TransactionAmount,
		Metadata:          request.Metadata,
	}

	var resources []*transact.TransactionResource
	for _, instruction := range instructions {
		if !s.instructionEffective(instruction) || !accountInGoodStanding(instruction.OverdraftAccount) {
			l.Debug().Str("overdraft_account", instruction.OverdraftAccount.AccountNumber).Msg("Overdraft instruction not valid")
			continue
		}

		reservation.AccountNumber = instruction.OverdraftAccount.AccountNumber
		res, err := s.client.RecordReservation(ctx, trace, reservation)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res.Resource)

		if res.Status == transact.StatusInsufficientFunds {
			l.Debug().Str("overdraft_account", instruction.OverdraftAccount.AccountNumber).Msg("Overdraft reservation rejected")
			continue
		}
		break
	}

	return resources, nil
}

// instructionEffective applies strict boundaries: an instruction is not yet
// effective at its exact start time and no longer effective at its exact end.
func (s *Service) instructionEffective(instruction *model.OverdraftInstruction) bool {
	now := s.now()
	return instruction.LifecycleStatus == model.LifecycleEffective &&
		now.After(instruction.EffectiveStart) &&
		(instruction.EffectiveEnd == nil || now.Before(*instruction.EffectiveEnd))
}

func accountInGoodStanding(account model.Account) bool {
	return account.LifecycleStatus == model.LifecycleEffective
}

func lastResource(resources []*transact.TransactionResource) *transact.TransactionResource {
	if len(resources) == 0 {
		return nil
	}
	return resources[len(resources)-1]
}
