package spin

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
)

// MockAccountRepo implements [repository.Account]
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetAccount(ctx context.Context, userID string) (*domain.SpinAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinAccount), args.Error(1)
}

func (m *MockAccountRepo) GetOrCreateAccount(ctx context.Context, userID, username string) (*domain.SpinAccount, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinAccount), args.Error(1)
}

func (m *MockAccountRepo) AddSpins(ctx context.Context, userID string, spins int) error {
	args := m.Called(ctx, userID, spins)
	return args.Error(0)
}

func (m *MockAccountRepo) BeginSpinTx(ctx context.Context) (repository.SpinTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.SpinTx), args.Error(1)
}

func (m *MockAccountRepo) CreditEarnings(ctx context.Context, userID string, chips int) error {
	args := m.Called(ctx, userID, chips)
	return args.Error(0)
}

// MockSpinTx implements [repository.SpinTx]
type MockSpinTx struct {
	mock.Mock
}

func (m *MockSpinTx) SpendSpins(ctx context.Context, userID string, batchSize int) (*domain.SpinAccount, error) {
	args := m.Called(ctx, userID, batchSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinAccount), args.Error(1)
}

func (m *MockSpinTx) InsertEvents(ctx context.Context, events []domain.SpinEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockSpinTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSpinTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLedger implements [repository.Ledger]
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListPending(ctx context.Context, userID string) ([]domain.SpinEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpinEvent), args.Error(1)
}

func (m *MockLedger) ApproveEvents(ctx context.Context, userID string, eventIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, userID, eventIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockLedger) DiscardEvents(ctx context.Context, userID string, eventIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, eventIDs)
	return args.Error(0)
}

// MockApprovals implements [Approvals]
type MockApprovals struct {
	mock.Mock
}

func (m *MockApprovals) SubmitRewardBatch(ctx context.Context, req *domain.ApprovalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
