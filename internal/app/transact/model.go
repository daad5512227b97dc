package transact

import (
	"time"

	"github.com/google/uuid"
)

// Status of a transaction operation as reported by the downstream services.
type Status int

const (
	StatusSuccess           Status = 0
	StatusInsufficientFunds Status = 1
	StatusInternalError     Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	}
	return "UNKNOWN"
}

// TypeCode classifies a ledger event produced by the downstream services.
type TypeCode string

const (
	TypeNormal            TypeCode = "NO"
	TypeReservation       TypeCode = "RE"
	TypeReservationCommit TypeCode = "RC"
	TypeRejected          TypeCode = "RJ"
)

// Trace carries the per-message identifiers attached to every downstream call.
type Trace struct {
	CorrelationID      string
	BusinessTaxonomyID string
}

type TransactionRequest struct {
	RequestID               uuid.UUID `json:"requestUuid" validate:"required"`
	AccountNumber           string    `json:"accountNumber" validate:"required"`
	DebitCardNumber         string    `json:"debitCardNumber"`
	TransactionAmount       int64     `json:"transactionAmount"`
	Metadata                string    `json:"transactionMetaDataJson" validate:"required"`
	AuthorizeAgainstBalance bool      `json:"authorizeAgainstBalance"`
	ProtectAgainstOverdraft bool      `json:"protectAgainstOverdraft"`
}

type ReservationRequest struct {
	RequestID         uuid.UUID `json:"requestUuid"`
	AccountNumber     string    `json:"accountNumber"`
	DebitCardNumber   string    `json:"debitCardNumber"`
	TransactionAmount int64     `json:"transactionAmount"`
	Metadata          string    `json:"transactionMetaDataJson"`
}

type TransferAndTransactRequest struct {
	TransferReservation *TransactionResource `json:"transferReservation"`
	TransactionRequest  *TransactionRequest  `json:"transactionRequest"`
}

type CommitReservationRequest struct {
	RequestID         uuid.UUID `json:"requestUuid"`
	ReservationID     uuid.UUID `json:"reservationUuid"`
	TransactionAmount int64     `json:"transactionAmount"`
	Metadata          string    `json:"transactionMetaDataJson"`
}

// TransactionResource is one ledger event. Only the downstream services
// produce these; this service never fabricates one.
type TransactionResource struct {
	TransactionID     uuid.UUID `json:"transactionUuid"`
	ReservationID     uuid.UUID `json:"reservationUuid"`
	RequestID         uuid.UUID `json:"requestUuid"`
	AccountNumber     string    `json:"accountNumber"`
	DebitCardNumber   string    `json:"debitCardNumber"`
	TransactionAmount int64     `json:"transactionAmount"`
	RunningBalance    int64     `json:"runningBalanceAmount"`
	Metadata          string    `json:"transactionMetaDataJson"`
	InsertTime        time.Time `json:"insertTimestamp"`
	TypeCode          TypeCode  `json:"transactionTypeCode"`
}

// TransactionResponse accumulates the ledger events in causal call order.
// The sequence is append-only, never reordered or deduplicated.
type TransactionResponse struct {
	Status       Status                 `json:"status"`
	Transactions []*TransactionResource `json:"transactions"`
}

type ReservationResponse struct {
	Status   Status               `json:"status"`
	Resource *TransactionResource `json:"resource"`
}

type TransferAndTransactResponse struct {
	Status       Status                 `json:"status"`
	Transactions []*TransactionResource `json:"transactions"`
}

type CommitReservationResponse struct {
	Status   Status               `json:"status"`
	Resource *TransactionResource `json:"resource"`
}

// TimedResponse is the downstream service response wrapper.
type TimedResponse[T any] struct {
	ServiceTimeElapsedMS int64 `json:"serviceTimeElapsedMs"`
	Payload              *T    `json:"payload"`
}
