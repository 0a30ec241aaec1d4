package approval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
	"github.com/verdantclub/ClubWheelBot_Go/internal/logger"
	"github.com/verdantclub/ClubWheelBot_Go/internal/metrics"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
	"github.com/verdantclub/ClubWheelBot_Go/internal/tier"
)

// Coordinator owns the approval protocol: it fans pending requests out to
// every operator, accepts the first terminal decision, applies the decision's
// side effect exactly once, and tells the losing operators their controls
// are gone.
type Coordinator interface {
	SubmitRewardBatch(ctx context.Context, req *domain.ApprovalRequest) error
	SubmitTransfer(ctx context.Context, req *domain.ApprovalRequest) error
	Resolve(ctx context.Context, requestID uuid.UUID, operatorID string, decision domain.ApprovalDecision) (*domain.ResolutionResult, error)
	PendingOlderThan(age time.Duration) []*domain.ApprovalRequest
	Remind(ctx context.Context, req *domain.ApprovalRequest)
	Shutdown(ctx context.Context) error
}

// trackedRequest pairs a live request with its per-request lock and the
// notification handles it produced, one per operator.
type trackedRequest struct {
	mu      sync.Mutex
	req     *domain.ApprovalRequest
	handles map[string]string // operatorID -> message handle
}

type coordinator struct {
	ledger      repository.Ledger
	accountRepo repository.Account
	transfers   repository.Transfer
	tiers       *tier.Resolver
	notifier    Notifier
	operatorIDs []string
	publisher   *event.ResilientPublisher
	onCredit    func(userID string) // cache invalidation hook

	mu       sync.Mutex
	registry map[uuid.UUID]*trackedRequest
	wg       sync.WaitGroup
}

// NewCoordinator creates a new approval coordinator. onCredit is invoked
// after any resolution that changed a user's counters; nil is allowed.
func NewCoordinator(
	ledger repository.Ledger,
	accountRepo repository.Account,
	transfers repository.Transfer,
	tiers *tier.Resolver,
	notifier Notifier,
	operatorIDs []string,
	publisher *event.ResilientPublisher,
	onCredit func(userID string),
) Coordinator {
	return &coordinator{
		ledger:      ledger,
		accountRepo: accountRepo,
		transfers:   transfers,
		tiers:       tiers,
		notifier:    notifier,
		operatorIDs: operatorIDs,
		publisher:   publisher,
		onCredit:    onCredit,
		registry:    make(map[uuid.UUID]*trackedRequest),
	}
}

// SubmitRewardBatch registers a reward batch for review and fans it out.
func (c *coordinator) SubmitRewardBatch(ctx context.Context, req *domain.ApprovalRequest) error {
	if req.Subject != domain.SubjectRewardBatch {
		return fmt.Errorf("unexpected subject %q for reward batch", req.Subject)
	}
	c.register(ctx, req)
	_ = c.publisher.Publish(ctx, event.NewRewardPendingEvent(req, len(req.EventIDs)))
	return nil
}

// SubmitTransfer registers a deposit or withdrawal request and fans it out.
func (c *coordinator) SubmitTransfer(ctx context.Context, req *domain.ApprovalRequest) error {
	if req.Subject != domain.SubjectDeposit && req.Subject != domain.SubjectWithdrawal {
		return fmt.Errorf("unexpected subject %q for transfer", req.Subject)
	}
	c.register(ctx, req)
	return nil
}

// register tracks the request and notifies every operator in the background.
func (c *coordinator) register(ctx context.Context, req *domain.ApprovalRequest) {
	tracked := &trackedRequest{
		req:     req,
		handles: make(map[string]string),
	}

	c.mu.Lock()
	c.registry[req.ID] = tracked
	c.mu.Unlock()

	for _, operatorID := range c.operatorIDs {
		c.wg.Add(1)
		go c.notifyPending(ctx, tracked, operatorID)
	}
}

// notifyPending delivers one operator's card. Failures are logged and
// counted; the request stays resolvable through the API regardless.
func (c *coordinator) notifyPending(ctx context.Context, tracked *trackedRequest, operatorID string) {
	defer c.wg.Done()

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), NotifyTimeout)
	defer cancel()

	handle, err := c.notifier.NotifyPending(nctx, operatorID, tracked.req)
	if err != nil {
		metrics.NotificationFailures.WithLabelValues("pending").Inc()
		logger.FromContext(ctx).Warn("Failed to notify operator of pending request",
			"operator_id", operatorID,
			"request_id", tracked.req.ID,
			"error", domain.NotificationDeliveryError{OperatorID: operatorID, Op: "pending", Err: err})
		return
	}

	tracked.mu.Lock()
	defer tracked.mu.Unlock()
	if tracked.req.Status != domain.ApprovalStatusPending {
		// Resolved while we were posting; strip the stale controls.
		c.clearAsync(operatorID, handle)
		return
	}
	tracked.handles[operatorID] = handle
}

// Resolve applies an operator's decision. The first decision on a request
// wins; any later one returns AlreadyProcessedError naming the winner. The
// winning decision's side effect is applied at most once, guarded both by
// the per-request lock and by the storage-level conditional transitions.
func (c *coordinator) Resolve(ctx context.Context, requestID uuid.UUID, operatorID string, decision domain.ApprovalDecision) (*domain.ResolutionResult, error) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	tracked, ok := c.registry[requestID]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRequestNotFound, requestID)
	}

	tracked.mu.Lock()
	defer tracked.mu.Unlock()

	req := tracked.req
	if req.Status != domain.ApprovalStatusPending {
		return nil, domain.AlreadyProcessedError{ResolvedBy: req.ResolvedBy, Status: req.Status}
	}

	if err := c.applyDecision(ctx, req, decision, operatorID); err != nil {
		// The request stays Pending; the operator may retry.
		return nil, err
	}

	now := time.Now().UTC()
	req.Status = decision.Terminal()
	req.ResolvedBy = operatorID
	req.ResolvedAt = &now

	result := &domain.ResolutionResult{
		RequestID:  req.ID,
		Subject:    req.Subject,
		Decision:   decision,
		ResolvedBy: operatorID,
		Applied:    true,
	}

	if c.onCredit != nil {
		c.onCredit(req.UserID)
	}

	_ = c.publisher.Publish(ctx, event.NewApprovalResolvedEvent(req, decision))
	log.Info("Approval request resolved",
		"request_id", req.ID,
		"subject", req.Subject,
		"decision", decision,
		"resolved_by", operatorID)

	c.wg.Add(1)
	go c.notifyUser(req.UserID, result)

	// Tell the other operators their controls are dead. Best effort, off
	// the caller's path.
	for opID, handle := range tracked.handles {
		c.wg.Add(1)
		go c.notifyResolved(opID, handle, operatorID, result)
	}

	// The entry stays in the registry with its terminal status so a late
	// action still learns who resolved it. The reminder sweep prunes it
	// once ResolvedRetention has passed.
	return result, nil
}

// applyDecision performs the side effect for the decision, atomically with
// respect to racing resolvers.
func (c *coordinator) applyDecision(ctx context.Context, req *domain.ApprovalRequest, decision domain.ApprovalDecision, operatorID string) error {
	switch req.Subject {
	case domain.SubjectRewardBatch:
		if decision == domain.DecisionApprove {
			credited, err := c.ledger.ApproveEvents(ctx, req.UserID, req.EventIDs)
			if err != nil {
				return fmt.Errorf("failed to approve reward batch: %w", err)
			}
			if credited != req.Amount {
				logger.FromContext(ctx).Warn("Credited total differs from requested batch total",
					"request_id", req.ID, "credited", credited, "requested", req.Amount)
			}
			return nil
		}
		if err := c.ledger.DiscardEvents(ctx, req.UserID, req.EventIDs); err != nil {
			return fmt.Errorf("failed to discard reward batch: %w", err)
		}
		return nil

	case domain.SubjectDeposit:
		affected, err := c.transfers.ResolveRequestIfPending(ctx, req.ID, decision.Terminal(), operatorID)
		if err != nil {
			return fmt.Errorf("failed to resolve deposit: %w", err)
		}
		if affected == 0 || decision != domain.DecisionApprove {
			return nil
		}
		// Read the stored request back for the exact deposit amount.
		stored, err := c.transfers.GetRequest(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to load deposit request: %w", err)
		}
		credits, err := c.tiers.CreditsForDeposit(stored.Amount)
		if err != nil {
			return fmt.Errorf("failed to resolve deposit tier: %w", err)
		}
		if credits == 0 {
			return nil
		}
		if _, err := c.accountRepo.GetOrCreateAccount(ctx, req.UserID, req.Username); err != nil {
			return fmt.Errorf("failed to ensure account: %w", err)
		}
		if err := c.accountRepo.AddSpins(ctx, req.UserID, credits); err != nil {
			return fmt.Errorf("failed to grant deposit credits: %w", err)
		}
		metrics.DepositsCredited.Add(float64(credits))
		return nil

	case domain.SubjectWithdrawal:
		if _, err := c.transfers.ResolveRequestIfPending(ctx, req.ID, decision.Terminal(), operatorID); err != nil {
			return fmt.Errorf("failed to resolve withdrawal: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown approval subject %q", req.Subject)
	}
}

// notifyUser delivers the outcome to the user whose request was decided.
func (c *coordinator) notifyUser(userID string, result *domain.ResolutionResult) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
	defer cancel()

	if err := c.notifier.NotifyUser(ctx, userID, result); err != nil {
		metrics.NotificationFailures.WithLabelValues("user").Inc()
		logger.Warn("Failed to deliver outcome to user", "user_id", userID, "request_id", result.RequestID, "error", err)
	}
}

func (c *coordinator) notifyResolved(operatorID, handle, resolvedBy string, result *domain.ResolutionResult) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
	defer cancel()

	if operatorID == resolvedBy {
		// The winner sees the outcome; everyone else just loses the buttons.
		if err := c.notifier.NotifyResolved(ctx, operatorID, handle, result); err != nil {
			metrics.NotificationFailures.WithLabelValues("resolved").Inc()
			logger.Warn("Failed to deliver resolution notice", "operator_id", operatorID, "error", err)
		}
		return
	}
	if err := c.notifier.ClearControls(ctx, operatorID, handle); err != nil {
		metrics.NotificationFailures.WithLabelValues("clear").Inc()
		logger.Warn("Failed to clear operator controls", "operator_id", operatorID, "error", err)
	}
}

func (c *coordinator) clearAsync(operatorID, handle string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
		defer cancel()
		if err := c.notifier.ClearControls(ctx, operatorID, handle); err != nil {
			metrics.NotificationFailures.WithLabelValues("clear").Inc()
			logger.Warn("Failed to clear stale controls", "operator_id", operatorID, "error", err)
		}
	}()
}

// PendingOlderThan returns requests that have sat Pending for at least the
// given age, for the reminder sweep. The same pass drops resolved entries
// whose retention window has expired.
func (c *coordinator) PendingOlderThan(age time.Duration) []*domain.ApprovalRequest {
	now := time.Now().UTC()
	cutoff := now.Add(-age)

	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []*domain.ApprovalRequest
	for id, tracked := range c.registry {
		tracked.mu.Lock()
		switch {
		case tracked.req.Status == domain.ApprovalStatusPending:
			if tracked.req.CreatedAt.Before(cutoff) {
				snapshot := *tracked.req
				stale = append(stale, &snapshot)
			}
		case tracked.req.ResolvedAt != nil && now.Sub(*tracked.req.ResolvedAt) > ResolvedRetention:
			delete(c.registry, id)
		}
		tracked.mu.Unlock()
	}
	return stale
}

// Remind re-pings every operator about a still-pending request.
func (c *coordinator) Remind(ctx context.Context, req *domain.ApprovalRequest) {
	c.mu.Lock()
	tracked, ok := c.registry[req.ID]
	c.mu.Unlock()
	if !ok {
		return
	}

	tracked.mu.Lock()
	pending := tracked.req.Status == domain.ApprovalStatusPending
	tracked.mu.Unlock()
	if !pending {
		return
	}

	for _, operatorID := range c.operatorIDs {
		c.wg.Add(1)
		go c.notifyPending(ctx, tracked, operatorID)
	}
}

// Shutdown waits for in-flight notification goroutines to drain.
func (c *coordinator) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
