package spin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verdantclub/ClubWheelBot_Go/internal/anticheat"
	"github.com/verdantclub/ClubWheelBot_Go/internal/concurrency"
	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
)

// fakeAccountRepo is an in-memory account store for concurrency tests.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.SpinAccount
	events   []domain.SpinEvent
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.SpinAccount)}
}

func (f *fakeAccountRepo) GetAccount(_ context.Context, userID string) (*domain.SpinAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	snapshot := *a
	return &snapshot, nil
}

func (f *fakeAccountRepo) GetOrCreateAccount(_ context.Context, userID, username string) (*domain.SpinAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		a = &domain.SpinAccount{UserID: userID, Username: username}
		f.accounts[userID] = a
	}
	snapshot := *a
	return &snapshot, nil
}

func (f *fakeAccountRepo) AddSpins(_ context.Context, userID string, spins int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.AvailableSpins += spins
	return nil
}

func (f *fakeAccountRepo) CreditEarnings(_ context.Context, userID string, chips int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[userID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.TotalChipsEarned += chips
	return nil
}

func (f *fakeAccountRepo) BeginSpinTx(_ context.Context) (repository.SpinTx, error) {
	return &fakeSpinTx{repo: f}, nil
}

type fakeSpinTx struct {
	repo      *fakeAccountRepo
	committed bool
}

func (t *fakeSpinTx) SpendSpins(_ context.Context, userID string, batchSize int) (*domain.SpinAccount, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	a, ok := t.repo.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if a.AvailableSpins < batchSize {
		return nil, domain.ErrInsufficientCredits
	}
	a.AvailableSpins -= batchSize
	a.TotalSpinsUsed += batchSize
	snapshot := *a
	return &snapshot, nil
}

func (t *fakeSpinTx) InsertEvents(_ context.Context, events []domain.SpinEvent) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	t.repo.events = append(t.repo.events, events...)
	return nil
}

func (t *fakeSpinTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeSpinTx) Rollback(context.Context) error {
	if t.committed {
		return errors.New(repository.ErrMsgTxClosed)
	}
	return nil
}

func TestRequestSpins_ConcurrentBatchesSameUser(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(
		repo,
		new(MockLedger),
		anticheat.NewGuard(time.Minute, 1000),
		concurrency.NewLockManager(),
		new(MockApprovals),
		newTestPublisher(t),
	).(*service)
	svc.randFloat = func() float64 { return 0.99 } // no surprises, keep counts exact

	approvals := svc.approvals.(*MockApprovals)
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	const userID = "hot-user"
	const workers = 20
	const batchSize = 5

	if _, err := repo.GetOrCreateAccount(context.Background(), userID, "mallory"); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	require.NoError(t, repo.AddSpins(context.Background(), userID, workers*batchSize))

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RequestSpins(context.Background(), userID, "mallory", batchSize)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	account, err := repo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, account.AvailableSpins, "every ticket spent exactly once")
	assert.Equal(t, workers*batchSize, account.TotalSpinsUsed)

	// Lifetime spin numbers must be unique and gapless.
	seen := make(map[int]bool)
	for _, e := range repo.events {
		assert.False(t, seen[e.SpinNumber], "duplicate spin number %d", e.SpinNumber)
		seen[e.SpinNumber] = true
	}
	assert.Len(t, seen, workers*batchSize)
}

func TestRequestSpins_ConcurrentOverdraw(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(
		repo,
		new(MockLedger),
		anticheat.NewGuard(time.Minute, 1000),
		concurrency.NewLockManager(),
		new(MockApprovals),
		newTestPublisher(t),
	).(*service)
	svc.randFloat = func() float64 { return 0.99 }

	approvals := svc.approvals.(*MockApprovals)
	approvals.On("SubmitRewardBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	const userID = "broke-user"
	if _, err := repo.GetOrCreateAccount(context.Background(), userID, "oscar"); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	// Only enough tickets for three of the five racing batches.
	require.NoError(t, repo.AddSpins(context.Background(), userID, 15))

	var wg sync.WaitGroup
	errCh := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RequestSpins(context.Background(), userID, "oscar", 5)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	succeeded, rejected := 0, 0
	for err := range errCh {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
			rejected++
		}
	}
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 2, rejected)

	account, err := repo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, account.AvailableSpins, "never negative, never partially spent")
	assert.Equal(t, 15, account.TotalSpinsUsed)
}
