package spin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/anticheat"
	"github.com/verdantclub/ClubWheelBot_Go/internal/concurrency"
	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
	"github.com/verdantclub/ClubWheelBot_Go/internal/logger"
	"github.com/verdantclub/ClubWheelBot_Go/internal/metrics"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
	"github.com/verdantclub/ClubWheelBot_Go/internal/reward"
	"github.com/verdantclub/ClubWheelBot_Go/internal/utils"
)

// Approvals defines how settled reward batches enter operator review.
type Approvals interface {
	SubmitRewardBatch(ctx context.Context, req *domain.ApprovalRequest) error
}

// RevealFunc posts a user-facing reveal of a settled batch. Runs outside the
// request path, so it must tolerate a long wait for a reveal slot.
type RevealFunc func(ctx context.Context, result *domain.SpinBatchResult, username string)

// Service defines the interface for spin operations
type Service interface {
	RequestSpins(ctx context.Context, userID, username string, batchSize int) (*domain.SpinBatchResult, error)
	GetAccount(ctx context.Context, userID string) (*domain.SpinAccount, error)
	GetPending(ctx context.Context, userID string) (*domain.PendingBatch, error)
	InvalidateAccount(userID string)
	SetRevealFunc(fn RevealFunc)
	Shutdown(ctx context.Context) error
}

type service struct {
	accountRepo repository.Account
	ledger      repository.Ledger
	guard       *anticheat.Guard
	locks       *concurrency.LockManager
	rewardPool  *reward.Sampler
	displayPool *reward.Sampler
	approvals   Approvals
	publisher   *event.ResilientPublisher
	cache       *accountCache
	reveal      RevealFunc
	randFloat   func() float64         // Injectable for testing
	randInt     func(min, max int) int // Injectable for testing
}

// NewService creates a new spin service
func NewService(
	accountRepo repository.Account,
	ledger repository.Ledger,
	guard *anticheat.Guard,
	locks *concurrency.LockManager,
	approvals Approvals,
	publisher *event.ResilientPublisher,
) Service {
	return &service{
		accountRepo: accountRepo,
		ledger:      ledger,
		guard:       guard,
		locks:       locks,
		rewardPool:  reward.NewSampler(reward.DefaultPool),
		displayPool: reward.NewSampler(reward.DisplayPool),
		approvals:   approvals,
		publisher:   publisher,
		cache:       newAccountCache(AccountCacheSize, AccountCacheTTL),
		randFloat:   utils.RandomFloat,
		randInt:     utils.RandomInt,
	}
}

// RequestSpins settles a batch of spins for the user: debits tickets, draws
// display and reward outcomes, records the events as Pending, and opens an
// approval request when any real reward fired.
func (s *service) RequestSpins(ctx context.Context, userID, username string, batchSize int) (*domain.SpinBatchResult, error) {
	log := logger.FromContext(ctx)

	if batchSize < 1 || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidBatchSize, batchSize)
	}

	// Throttle before touching any state; a rejected attempt is not recorded.
	if err := s.guard.Allow(userID); err != nil {
		metrics.SpinsThrottled.Inc()
		return nil, err
	}

	account, err := s.accountRepo.GetOrCreateAccount(ctx, userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.CanSpend(batchSize) {
		return nil, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientCredits, account.AvailableSpins, batchSize)
	}

	var result *domain.SpinBatchResult
	err = s.locks.WithLock(lockKeyPrefix+userID, func() error {
		var spinErr error
		result, spinErr = s.executeBatch(ctx, userID, username, batchSize)
		return spinErr
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(userID)

	if rewards := result.RewardEvents(); len(rewards) > 0 {
		if err := s.openApproval(ctx, result, username, rewards); err != nil {
			// The batch is already committed; the events stay Pending and
			// the reminder sweep will surface them.
			log.Error("Failed to open approval request", "user_id", userID, "error", err)
		}
	}

	// Never fails synchronously; failures go through the retry loop.
	_ = s.publisher.Publish(ctx, event.NewSpinBatchCompletedEvent(result, username))

	if s.reveal != nil {
		// Detached from the request context: the reveal animation outlives
		// the HTTP response.
		go s.reveal(context.WithoutCancel(ctx), result, username)
	}

	return result, nil
}

// executeBatch performs the debit and outcome generation under the account lock.
func (s *service) executeBatch(ctx context.Context, userID, username string, batchSize int) (*domain.SpinBatchResult, error) {
	tx, err := s.accountRepo.BeginSpinTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	account, err := tx.SpendSpins(ctx, userID, batchSize)
	if err != nil {
		return nil, err
	}

	// Lifetime spin numbers for this batch: the debit already advanced the
	// used counter, so the batch covers (used-batchSize, used].
	firstSpin := account.TotalSpinsUsed - batchSize + 1

	now := time.Now().UTC()
	events := make([]domain.SpinEvent, 0, batchSize+1)
	pendingChips := 0

	for i := 0; i < batchSize; i++ {
		n := firstSpin + i
		e := domain.SpinEvent{
			ID:             uuid.New(),
			UserID:         userID,
			SpinNumber:     n,
			DisplayOutcome: s.displayPool.Draw().Label,
			Status:         domain.EventStatusPending,
			CreatedAt:      now,
		}

		if m := reward.FiringMilestone(userID, n, reward.MilestoneSizes); m > 0 {
			prize := s.rewardPool.Draw()
			e.RewardLabel = prize.Label
			e.RewardSource = domain.RewardSourceMilestone
			e.ChipValue = prize.Chips
			e.MilestoneSize = m
			pendingChips += prize.Chips
			metrics.MilestonesHit.WithLabelValues(metrics.MilestoneLabel(m)).Inc()
		}

		events = append(events, e)
	}

	// One independent surprise roll per qualifying batch.
	if batchSize >= reward.MinSurpriseBatch && s.randFloat() < reward.SurpriseProbability {
		chips := s.randInt(reward.SurpriseMinChips, reward.SurpriseMaxChips)
		events = append(events, domain.SpinEvent{
			ID:             uuid.New(),
			UserID:         userID,
			SpinNumber:     account.TotalSpinsUsed,
			DisplayOutcome: SurpriseRewardLabel,
			RewardLabel:    SurpriseRewardLabel,
			RewardSource:   domain.RewardSourceSurprise,
			ChipValue:      chips,
			Status:         domain.EventStatusPending,
			CreatedAt:      now,
		})
		pendingChips += chips
		metrics.SurprisesHit.Inc()
	}

	if err := tx.InsertEvents(ctx, events); err != nil {
		return nil, fmt.Errorf("failed to insert spin events: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit spin batch: %w", err)
	}

	return &domain.SpinBatchResult{
		UserID:         userID,
		BatchSize:      batchSize,
		Events:         events,
		RemainingSpins: account.AvailableSpins,
		PendingChips:   pendingChips,
	}, nil
}

// openApproval creates the reward batch's approval request and hands it to
// the coordinator.
func (s *service) openApproval(ctx context.Context, result *domain.SpinBatchResult, username string, rewards []domain.SpinEvent) error {
	ids := make([]uuid.UUID, len(rewards))
	for i, e := range rewards {
		ids[i] = e.ID
	}

	req := &domain.ApprovalRequest{
		ID:        uuid.New(),
		Subject:   domain.SubjectRewardBatch,
		UserID:    result.UserID,
		Username:  username,
		EventIDs:  ids,
		Amount:    result.PendingChips,
		Status:    domain.ApprovalStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.approvals.SubmitRewardBatch(ctx, req); err != nil {
		return err
	}

	result.ApprovalRequest = req.ID
	return nil
}

// GetAccount returns an account snapshot for display, served read-through
// from the cache.
func (s *service) GetAccount(ctx context.Context, userID string) (*domain.SpinAccount, error) {
	if account, ok := s.cache.Get(userID); ok {
		return account, nil
	}

	account, err := s.accountRepo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(userID, account)
	return account, nil
}

// GetPending returns the user's Pending events and their chip sum.
func (s *service) GetPending(ctx context.Context, userID string) (*domain.PendingBatch, error) {
	events, err := s.ledger.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}

	total := 0
	for _, e := range events {
		total += e.ChipValue
	}

	return &domain.PendingBatch{
		UserID:     userID,
		Events:     events,
		TotalChips: total,
	}, nil
}

// InvalidateAccount drops the cached snapshot after an external counter
// mutation (approval crediting, deposit grants).
func (s *service) InvalidateAccount(userID string) {
	s.cache.Invalidate(userID)
}

// SetRevealFunc installs the post-batch reveal hook. Set once during startup,
// before the service takes traffic.
func (s *service) SetRevealFunc(fn RevealFunc) {
	s.reveal = fn
}

// Shutdown gracefully stops the service, draining in-flight publish retries.
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.publisher.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
