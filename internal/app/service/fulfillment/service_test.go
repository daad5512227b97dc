package fulfillment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"fulfillment/internal/app/apperr"
	"fulfillment/internal/app/model"
	fulfillmentmock "fulfillment/internal/app/service/fulfillment/mock"
	storagemock "fulfillment/internal/app/storage/mock"
	"fulfillment/internal/app/transact"
)

var testNow = time.Date(2021, 11, 15, 12, 0, 0, 0, time.UTC)

func testService(t *testing.T) (*Service, *storagemock.MockOverdraftRepository, *fulfillmentmock.MockTransactionClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	instructions := storagemock.NewMockOverdraftRepository(ctrl)
	client := fulfillmentmock.NewMockTransactionClient(ctrl)

	s := New(instructions, client)
	s.now = func() time.Time { return testNow }

	return s, instructions, client
}

func testEnvelope(req *transact.TransactionRequest) *model.Envelope[transact.TransactionRequest] {
	return &model.Envelope[transact.TransactionRequest]{
		ProducerAIT:         "11111",
		CorrelationID:       "corr-1",
		BusinessTaxonomyID:  "tax-1",
		MessageCreationTime: testNow.Add(-time.Second),
		Payload:             req,
	}
}

func testRequest(protect bool) *transact.TransactionRequest {
	return &transact.TransactionRequest{
		RequestID:               uuid.New(),
		AccountNumber:           "ACCT-1",
		DebitCardNumber:         "79927398713",
		TransactionAmount:       -5000,
		Metadata:                `{"channel":"atm"}`,
		ProtectAgainstOverdraft: protect,
	}
}

func effectiveInstruction(account string) *model.OverdraftInstruction {
	start := testNow.Add(-24 * time.Hour)
	return &model.OverdraftInstruction{
		OverdraftAccount: model.Account{AccountNumber: account, LifecycleStatus: model.LifecycleEffective},
		LifecycleStatus:  model.LifecycleEffective,
		EffectiveStart:   start,
	}
}

func TestProcessTransaction_SufficientFunds(t *testing.T) {
	s, _, client := testService(t)
	req := testRequest(true)
	env := testEnvelope(req)

	recorded := &transact.TransactionResponse{
		Status:       transact.StatusSuccess,
		Transactions: []*transact.TransactionResource{{TransactionID: uuid.New(), TypeCode: transact.TypeNormal}},
	}
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(recorded, nil)

	got, err := s.ProcessTransaction(context.Background(), env, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != recorded {
		t.Error("response is not the record result")
	}
	if len(got.Transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(got.Transactions))
	}
}

func TestProcessTransaction_InsufficientFundsUnprotected(t *testing.T) {
	s, _, client := testService(t)
	req := testRequest(false)
	env := testEnvelope(req)

	rejected := &transact.TransactionResponse{
		Status:       transact.StatusInsufficientFunds,
		Transactions: []*transact.TransactionResource{{TransactionID: uuid.New(), TypeCode: transact.TypeRejected}},
	}
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(rejected, nil)

	got, err := s.ProcessTransaction(context.Background(), env, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != transact.StatusInsufficientFunds {
		t.Errorf("status = %v, want INSUFFICIENT_FUNDS", got.Status)
	}
	if len(got.Transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(got.Transactions))
	}
}

func TestProcessTransaction_NoValidInstructions(t *testing.T) {
	s, instructions, client := testService(t)
	req := testRequest(true)
	env := testEnvelope(req)

	rejected := &transact.TransactionResponse{
		Status:       transact.StatusInsufficientFunds,
		Transactions: []*transact.TransactionResource{{TransactionID: uuid.New(), TypeCode: transact.TypeRejected}},
	}
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(rejected, nil)

	ended := testNow.Add(-time.Hour)
	wrongStatus := effectiveInstruction("OD-1")
	wrongStatus.LifecycleStatus = "CL"
	expired := effectiveInstruction("OD-2")
	expired.EffectiveEnd = &ended
	closedTarget := effectiveInstruction("OD-3")
	closedTarget.OverdraftAccount.LifecycleStatus = "CL"

	instructions.EXPECT().GetOverdraftInstructions(gomock.Any(), req.AccountNumber).
		Return([]*model.OverdraftInstruction{wrongStatus, expired, closedTarget}, nil)

	got, err := s.ProcessTransaction(context.Background(), env, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != transact.StatusInsufficientFunds {
		t.Errorf("status = %v, want INSUFFICIENT_FUNDS", got.Status)
	}
	if len(got.Transactions) != 1 {
		t.Errorf("transactions = %d, want 1 (no reservation attempted)", len(got.Transactions))
	}
}

func TestProcessTransaction_OverdraftCovered(t *testing.T) {
	s, instructions, client := testService(t)
	req := testRequest(true)
	env := testEnvelope(req)

	original := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeRejected}
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(&transact.TransactionResponse{
		Status:       transact.StatusInsufficientFunds,
		Transactions: []*transact.TransactionResource{original},
	}, nil)

	instructions.EXPECT().GetOverdraftInstructions(gomock.Any(), req.AccountNumber).
		Return([]*model.OverdraftInstruction{effectiveInstruction("OD-1")}, nil)

	reservation := &transact.TransactionResource{
		TransactionID:     uuid.New(),
		RequestID:         req.RequestID,
		AccountNumber:     "OD-1",
		TransactionAmount: req.TransactionAmount,
		Metadata:          req.Metadata,
		TypeCode:          transact.TypeReservation,
	}
	client.EXPECT().RecordReservation(gomock.Any(), env.Trace(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ transact.Trace, in *transact.ReservationRequest) (*transact.ReservationResponse, error) {
			if in.AccountNumber != "OD-1" {
				t.Errorf("reservation account = %s, want OD-1", in.AccountNumber)
			}
			if in.RequestID != req.RequestID {
				t.Errorf("reservation request id = %s, want original %s", in.RequestID, req.RequestID)
			}
			return &transact.ReservationResponse{Status: transact.StatusSuccess, Resource: reservation}, nil
		})

	transfer1 := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeNormal}
	transfer2 := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeNormal}
	client.EXPECT().TransferAndTransact(gomock.Any(), env.Trace(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ transact.Trace, in *transact.TransferAndTransactRequest) (*transact.TransferAndTransactResponse, error) {
			if in.TransferReservation != reservation {
				t.Error("transfer does not carry the reservation resource")
			}
			if in.TransactionRequest != req {
				t.Error("transfer does not carry the original request")
			}
			return &transact.TransferAndTransactResponse{
				Status:       transact.StatusSuccess,
				Transactions: []*transact.TransactionResource{transfer1, transfer2},
			}, nil
		})

	committed := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeReservationCommit}
	client.EXPECT().CommitReservation(gomock.Any(), env.Trace(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ transact.Trace, in *transact.CommitReservationRequest) (*transact.CommitReservationResponse, error) {
			if in.RequestID != reservation.TransactionID {
				t.Errorf("commit request id = %s, want reservation transaction id %s", in.RequestID, reservation.TransactionID)
			}
			if in.ReservationID != reservation.TransactionID {
				t.Errorf("commit reservation id = %s, want reservation transaction id %s", in.ReservationID, reservation.TransactionID)
			}
			return &transact.CommitReservationResponse{Status: transact.StatusSuccess, Resource: committed}, nil
		})

	got, err := s.ProcessTransaction(context.Background(), env, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != transact.StatusSuccess {
		t.Errorf("status = %v, want SUCCESS", got.Status)
	}
	want := []*transact.TransactionResource{original, reservation, transfer1, transfer2, committed}
	if len(got.Transactions) != len(want) {
		t.Fatalf("transactions = %d, want %d", len(got.Transactions), len(want))
	}
	for i := range want {
		if got.Transactions[i] != want[i] {
			t.Errorf("transactions[%d] out of order", i)
		}
	}
}

func TestProcessTransaction_SecondInstructionCovers(t *testing.T) {
	s, instructions, client := testService(t)
	req := testRequest(true)
	env := testEnvelope(req)

	original := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeRejected}
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(&transact.TransactionResponse{
		Status:       transact.StatusInsufficientFunds,
		Transactions: []*transact.TransactionResource{original},
	}, nil)

	instructions.EXPECT().GetOverdraftInstructions(gomock.Any(), req.AccountNumber).
		Return([]*model.OverdraftInstruction{effectiveInstruction("OD-1"), effectiveInstruction("OD-2")}, nil)

	firstAttempt := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeRejected}
	secondAttempt := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeReservation}

	gomock.InOrder(
		client.EXPECT().RecordReservation(gomock.Any(), env.Trace(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ transact.Trace, in *transact.ReservationRequest) (*transact.ReservationResponse, error) {
				if in.AccountNumber != "OD-1" {
					t.Errorf("first reservation account = %s, want OD-1", in.AccountNumber)
				}
				return &transact.ReservationResponse{Status: transact.StatusInsufficientFunds, Resource: firstAttempt}, nil
			}),
		client.EXPECT().RecordReservation(gomock.Any(), env.Trace(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ transact.Trace, in *transact.ReservationRequest) (*transact.ReservationResponse, error) {
				if in.AccountNumber != "OD-2" {
					t.Errorf("second reservation account = %s, want OD-2", in.AccountNumber)
				}
				return &transact.ReservationResponse{Status: transact.StatusSuccess, Resource: secondAttempt}, nil
			}),
	)

	transfer := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeNormal}
	client.EXPECT().TransferAndTransact(gomock.Any(), env.Trace(), gomock.Any()).Return(&transact.TransferAndTransactResponse{
		Status:       transact.StatusSuccess,
		Transactions: []*transact.TransactionResource{transfer},
	}, nil)

	committed := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeReservationCommit}
	client.EXPECT().CommitReservation(gomock.Any(), env.Trace(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ transact.Trace, in *transact.CommitReservationRequest) (*transact.CommitReservationResponse, error) {
			if in.ReservationID != secondAttempt.TransactionID {
				t.Errorf("commit built from %s, want second attempt %s", in.ReservationID, secondAttempt.TransactionID)
			}
			return &transact.CommitReservationResponse{Status: transact.StatusSuccess, Resource: committed}, nil
		})

	got, err := s.ProcessTransaction(context.Background(), env, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != transact.StatusSuccess {
		t.Errorf("status = %v, want SUCCESS", got.Status)
	}
	want := []*transact.TransactionResource{original, firstAttempt, secondAttempt, transfer, committed}
	if len(got.Transactions) != len(want) {
		t.Fatalf("transactions = %d, want %d", len(got.Transactions), len(want))
	}
	for i := range want {
		if got.Transactions[i] != want[i] {
			t.Errorf("transactions[%d] out of order", i)
		}
	}
}

func TestProcessTransaction_RecordErrorPropagates(t *testing.T) {
	s, _, client := testService(t)
	req := testRequest(true)
	env := testEnvelope(req)

	cause := apperr.Transient(errors.New("connection refused"))
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(nil, cause)

	_, err := s.ProcessTransaction(context.Background(), env, req)
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want the client error unmodified", err)
	}
}

// A commit failure after a successful transfer leaves the reservation open:
// nothing releases it. This documents current behavior.
func TestProcessTransaction_CommitFailureLeavesReservationOpen(t *testing.T) {
	s, instructions, client := testService(t)
	req := testRequest(true)
	env := testEnvelope(req)

	original := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeRejected}
	client.EXPECT().RecordTransaction(gomock.Any(), env.Trace(), req).Return(&transact.TransactionResponse{
		Status:       transact.StatusInsufficientFunds,
		Transactions: []*transact.TransactionResource{original},
	}, nil)

	instructions.EXPECT().GetOverdraftInstructions(gomock.Any(), req.AccountNumber).
		Return([]*model.OverdraftInstruction{effectiveInstruction("OD-1")}, nil)

	reservation := &transact.TransactionResource{TransactionID: uuid.New(), TypeCode: transact.TypeReservation}
	client.EXPECT().RecordReservation(gomock.Any(), env.Trace(), gomock.Any()).
		Return(&transact.ReservationResponse{Status: transact.StatusSuccess, Resource: reservation}, nil)

	client.EXPECT().TransferAndTransact(gomock.Any(), env.Trace(), gomock.Any()).Return(&transact.TransferAndTransactResponse{
		Status:       transact.StatusSuccess,
		Transactions: []*transact.TransactionResource{{TransactionID: uuid.New(), TypeCode: transact.TypeNormal}},
	}, nil)

	cause := apperr.Transient(errors.New("read timeout"))
	client.EXPECT().CommitReservation(gomock.Any(), env.Trace(), gomock.Any()).Return(nil, cause)

	_, err := s.ProcessTransaction(context.Background(), env, req)
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want the commit error unmodified", err)
	}
}

func TestInstructionEffective(t *testing.T) {
	s, _, _ := testService(t)

	end := testNow.Add(time.Hour)
	endNow := testNow
	startNow := testNow

	tests := []struct {
		name        string
		instruction *model.OverdraftInstruction
		want        bool
	}{
		{
			name: "effective open-ended",
			instruction: &model.OverdraftInstruction{
				LifecycleStatus: model.LifecycleEffective,
				EffectiveStart:  testNow.Add(-time.Hour),
			},
			want: true,
		},
		{
			name: "effective bounded",
			instruction: &model.OverdraftInstruction{
				LifecycleStatus: model.LifecycleEffective,
				EffectiveStart:  testNow.Add(-time.Hour),
				EffectiveEnd:    &end,
			},
			want: true,
		},
		{
			name: "wrong lifecycle status",
			instruction: &model.OverdraftInstruction{
				LifecycleStatus: "CL",
				EffectiveStart:  testNow.Add(-time.Hour),
			},
			want: false,
		},
		{
			name: "starts exactly now",
			instruction: &model.OverdraftInstruction{
				LifecycleStatus: model.LifecycleEffective,
				EffectiveStart:  startNow,
			},
			want: false,
		},
		{
			name: "ends exactly now",
			instruction: &model.OverdraftInstruction{
				LifecycleStatus: model.LifecycleEffective,
				EffectiveStart:  testNow.Add(-time.Hour),
				EffectiveEnd:    &endNow,
			},
			want: false,
		},
		{
			name: "not yet started",
			instruction: &model.OverdraftInstruction{
				LifecycleStatus: model.LifecycleEffective,
				EffectiveStart:  testNow.Add(time.Hour),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.instructionEffective(tt.instruction); got != tt.want {
				t.Errorf("instructionEffective() = %v, want %v", got, tt.want)
			}
		})
	}
}
