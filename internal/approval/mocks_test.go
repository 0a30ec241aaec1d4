package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
)

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

// MockTransferRepo implements [repository.Transfer]
type MockTransferRepo struct {
	mock.Mock
}

func (m *MockTransferRepo) CreateRequest(ctx context.Context, req *domain.TransferRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTransferRepo) GetRequest(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferRepo) ResolveRequestIfPending(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, resolvedBy string) (int64, error) {
	args := m.Called(ctx, id, status, resolvedBy)
	return int64(args.Int(0)), args.Error(1)
}

// recordingNotifier captures notification traffic for assertions. Safe for
// concurrent use.
type recordingNotifier struct {
	mu        sync.Mutex
	pending   map[string][]uuid.UUID // operatorID -> request ids
	resolved  []string               // operator ids given the outcome
	cleared   []string               // operator ids whose controls were stripped
	users     []string               // user ids told their outcome
	handleSeq int
	failFor   map[string]error // operatorID -> forced delivery error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		pending: make(map[string][]uuid.UUID),
		failFor: make(map[string]error),
	}
}

func (n *recordingNotifier) NotifyPending(_ context.Context, operatorID string, req *domain.ApprovalRequest) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.failFor[operatorID]; ok {
		return "", err
	}
	n.pending[operatorID] = append(n.pending[operatorID], req.ID)
	n.handleSeq++
	return operatorID + "-msg", nil
}

func (n *recordingNotifier) NotifyResolved(_ context.Context, operatorID, _ string, _ *domain.ResolutionResult) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, operatorID)
	return nil
}

func (n *recordingNotifier) ClearControls(_ context.Context, operatorID, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cleared = append(n.cleared, operatorID)
	return nil
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID string, _ *domain.ResolutionResult) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.failFor[userID]; ok {
		return err
	}
	n.users = append(n.users, userID)
	return nil
}

func (n *recordingNotifier) userNotices() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.users...)
}

func (n *recordingNotifier) pendingCount(operatorID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending[operatorID])
}
