package spin

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verdantclub/ClubWheelBot_Go/internal/anticheat"
	"github.com/verdantclub/ClubWheelBot_Go/internal/concurrency"
	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
	"github.com/verdantclub/ClubWheelBot_Go/internal/reward"
)

func newTestPublisher(t *testing.T) *event.ResilientPublisher {
	t.Helper()
	return event.NewResilientPublisher(event.NewMemoryBus(), event.ResilientConfig{
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "dead_letters.jsonl"),
	})
}

func newTestService(t *testing.T, repo *MockAccountRepo, ledger *MockLedger, approvals *MockApprovals) *service {
	t.Helper()
	svc := NewService(
		repo,
		ledger,
		anticheat.NewDefaultGuard(),
		concurrency.NewLockManager(),
		approvals,
		newTestPublisher(t),
	)
	return svc.(*service)
}

func TestRequestSpins_InvalidBatchSize(t *testing.T) {
	svc := newTestService(t, new(MockAccountRepo), new(MockLedger), new(MockApprovals))

	for _, size := range []int{0, -1, MaxBatchSize + 1} {
		_, err := svc.RequestSpins(context.Background(), "user-1", "alice", size)
		assert.ErrorIs(t, err, domain.ErrInvalidBatchSize, "size %d", size)
	}
}

func TestRequestSpins_Throttled(t *testing.T) {
	repo := new(MockAccountRepo)
	approvals := new(MockApprovals)
	svc := newTestService(t, repo, new(MockLedger), approvals)
	svc.guard = anticheat.NewGuard(time.Minute, 1)

	account := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 100}
	repo.On("GetOrCreateAccount", mock.Anything, "user-1", "alice").Return(account, nil)

	tx := new(MockSpinTx)
	repo.On("BeginSpinTx", mock.Anything).Return(tx, nil)
	after := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 99, TotalSpinsUsed: 1}
	tx.On("SpendSpins", mock.Anything, "user-1", 1).Return(after, nil)
	tx.On("InsertEvents", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	_, err := svc.RequestSpins(context.Background(), "user-1", "alice", 1)
	require.NoError(t, err)

	// Second request trips the one-request window.
	_, err = svc.RequestSpins(context.Background(), "user-1", "alice", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrThrottled)

	var throttled domain.ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Greater(t, throttled.RetryAfter, time.Duration(0))
}

func TestRequestSpins_InsufficientCredits(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := newTestService(t, repo, new(MockLedger), new(MockApprovals))

	account := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 2}
	repo.On("GetOrCreateAccount", mock.Anything, "user-1", "alice").Return(account, nil)

	_, err := svc.RequestSpins(context.Background(), "user-1", "alice", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
	repo.AssertNotCalled(t, "BeginSpinTx", mock.Anything)
}

func TestRequestSpins_BatchOutcomes(t *testing.T) {
	repo := new(MockAccountRepo)
	approvals := new(MockApprovals)
	svc := newTestService(t, repo, new(MockLedger), approvals)
	svc.randFloat = func() float64 { return 0.99 } // no surprise

	const userID = "user-1"
	const batchSize = 5

	account := &domain.SpinAccount{UserID: userID, AvailableSpins: 20}
	repo.On("GetOrCreateAccount", mock.Anything, userID, "alice").Return(account, nil)

	tx := new(MockSpinTx)
	repo.On("BeginSpinTx", mock.Anything).Return(tx, nil)
	after := &domain.SpinAccount{UserID: userID, AvailableSpins: 15, TotalSpinsUsed: batchSize}
	tx.On("SpendSpins", mock.Anything, userID, batchSize).Return(after, nil)

	var inserted []domain.SpinEvent
	tx.On("InsertEvents", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]domain.SpinEvent)
	}).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	result, err := svc.RequestSpins(context.Background(), userID, "alice", batchSize)
	require.NoError(t, err)

	assert.Equal(t, batchSize, result.BatchSize)
	assert.Equal(t, 15, result.RemainingSpins)
	require.Len(t, inserted, batchSize) // batch < 10, never a surprise event

	// Derive the expected milestone hits for spins 1..5 independently.
	wantChips := 0
	for i, e := range inserted {
		n := i + 1
		assert.Equal(t, n, e.SpinNumber)
		assert.Equal(t, domain.EventStatusPending, e.Status)
		assert.NotEmpty(t, e.DisplayOutcome)

		if m := reward.FiringMilestone(userID, n, reward.MilestoneSizes); m > 0 {
			assert.Equal(t, m, e.MilestoneSize)
			assert.Equal(t, domain.RewardSourceMilestone, e.RewardSource)
			assert.Greater(t, e.ChipValue, 0)
		} else {
			assert.Zero(t, e.ChipValue)
			assert.Empty(t, e.RewardLabel)
		}
		wantChips += e.ChipValue
	}
	assert.Equal(t, wantChips, result.PendingChips)

	if len(result.RewardEvents()) > 0 {
		approvals.AssertCalled(t, "SubmitRewardBatch", mock.Anything, mock.Anything)
		assert.NotEqual(t, uuid.Nil, result.ApprovalRequest)
	} else {
		approvals.AssertNotCalled(t, "SubmitRewardBatch", mock.Anything, mock.Anything)
	}
}

func TestRequestSpins_SurpriseReward(t *testing.T) {
	repo := new(MockAccountRepo)
	approvals := new(MockApprovals)
	svc := newTestService(t, repo, new(MockLedger), approvals)
	svc.randFloat = func() float64 { return 0.0 } // force the surprise
	svc.randInt = func(min, max int) int {
		assert.Equal(t, reward.SurpriseMinChips, min)
		assert.Equal(t, reward.SurpriseMaxChips, max)
		return 7
	}

	const userID = "surprise-user"
	const batchSize = reward.MinSurpriseBatch

	account := &domain.SpinAccount{UserID: userID, AvailableSpins: 50}
	repo.On("GetOrCreateAccount", mock.Anything, userID, "bob").Return(account, nil)

	tx := new(MockSpinTx)
	repo.On("BeginSpinTx", mock.Anything).Return(tx, nil)
	after := &domain.SpinAccount{UserID: userID, AvailableSpins: 40, TotalSpinsUsed: batchSize}
	tx.On("SpendSpins", mock.Anything, userID, batchSize).Return(after, nil)

	var inserted []domain.SpinEvent
	tx.On("InsertEvents", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]domain.SpinEvent)
	}).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RequestSpins(context.Background(), userID, "bob", batchSize)
	require.NoError(t, err)

	require.Len(t, inserted, batchSize+1)
	surprise := inserted[batchSize]
	assert.Equal(t, domain.RewardSourceSurprise, surprise.RewardSource)
	assert.Equal(t, 7, surprise.ChipValue)
	assert.Equal(t, SurpriseRewardLabel, surprise.RewardLabel)

	// The surprise is independent of milestone outcomes and joins the sum.
	milestoneChips := 0
	for _, e := range inserted[:batchSize] {
		milestoneChips += e.ChipValue
	}
	assert.Equal(t, milestoneChips+7, result.PendingChips)

	approvals.AssertCalled(t, "SubmitRewardBatch", mock.Anything, mock.Anything)
}

func TestRequestSpins_NoSurpriseBelowThreshold(t *testing.T) {
	repo := new(MockAccountRepo)
	approvals := new(MockApprovals)
	svc := newTestService(t, repo, new(MockLedger), approvals)
	svc.randFloat = func() float64 {
		t.Fatal("surprise roll must not happen for small batches")
		return 0
	}

	account := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 50}
	repo.On("GetOrCreateAccount", mock.Anything, "user-1", "alice").Return(account, nil)

	tx := new(MockSpinTx)
	repo.On("BeginSpinTx", mock.Anything).Return(tx, nil)
	after := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 41, TotalSpinsUsed: 9}
	tx.On("SpendSpins", mock.Anything, "user-1", 9).Return(after, nil)
	tx.On("InsertEvents", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	_, err := svc.RequestSpins(context.Background(), "user-1", "alice", reward.MinSurpriseBatch-1)
	require.NoError(t, err)
}

func TestRequestSpins_ApprovalFailureDoesNotFailBatch(t *testing.T) {
	repo := new(MockAccountRepo)
	approvals := new(MockApprovals)
	svc := newTestService(t, repo, new(MockLedger), approvals)
	svc.randFloat = func() float64 { return 0.0 }
	svc.randInt = func(min, max int) int { return 3 }

	const userID = "user-1"
	account := &domain.SpinAccount{UserID: userID, AvailableSpins: 50}
	repo.On("GetOrCreateAccount", mock.Anything, userID, "alice").Return(account, nil)

	tx := new(MockSpinTx)
	repo.On("BeginSpinTx", mock.Anything).Return(tx, nil)
	after := &domain.SpinAccount{UserID: userID, AvailableSpins: 40, TotalSpinsUsed: 10}
	tx.On("SpendSpins", mock.Anything, userID, 10).Return(after, nil)
	tx.On("InsertEvents", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(errors.New("operators unreachable"))

	result, err := svc.RequestSpins(context.Background(), userID, "alice", 10)
	require.NoError(t, err, "a committed batch must not fail on notification trouble")
	assert.NotNil(t, result)
}

func TestRequestSpins_SpendFailureRollsBack(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := newTestService(t, repo, new(MockLedger), new(MockApprovals))

	account := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 50}
	repo.On("GetOrCreateAccount", mock.Anything, "user-1", "alice").Return(account, nil)

	tx := new(MockSpinTx)
	repo.On("BeginSpinTx", mock.Anything).Return(tx, nil)
	// The account read raced a concurrent batch; storage has the last word.
	tx.On("SpendSpins", mock.Anything, "user-1", 5).Return(nil, domain.ErrInsufficientCredits)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.RequestSpins(context.Background(), "user-1", "alice", 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
	tx.AssertCalled(t, "Rollback", mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestGetAccount_CachesReads(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := newTestService(t, repo, new(MockLedger), new(MockApprovals))

	account := &domain.SpinAccount{UserID: "user-1", AvailableSpins: 5}
	repo.On("GetAccount", mock.Anything, "user-1").Return(account, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := svc.GetAccount(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 5, got.AvailableSpins)
	}
	repo.AssertExpectations(t)

	// Invalidation forces the next read back to storage.
	repo.On("GetAccount", mock.Anything, "user-1").Return(account, nil).Once()
	svc.InvalidateAccount("user-1")
	_, err := svc.GetAccount(context.Background(), "user-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetAccount_NotFound(t *testing.T) {
	repo := new(MockAccountRepo)
	svc := newTestService(t, repo, new(MockLedger), new(MockApprovals))

	repo.On("GetAccount", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)

	_, err := svc.GetAccount(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetPending(t *testing.T) {
	ledger := new(MockLedger)
	svc := newTestService(t, new(MockAccountRepo), ledger, new(MockApprovals))

	events := []domain.SpinEvent{
		{UserID: "user-1", ChipValue: 10, Status: domain.EventStatusPending},
		{UserID: "user-1", ChipValue: 0, Status: domain.EventStatusPending},
		{UserID: "user-1", ChipValue: 25, Status: domain.EventStatusPending},
	}
	ledger.On("ListPending", mock.Anything, "user-1").Return(events, nil)

	pending, err := svc.GetPending(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, pending.Events, 3)
	assert.Equal(t, 35, pending.TotalChips)
}
