package transfer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
	"github.com/verdantclub/ClubWheelBot_Go/internal/logger"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
	"github.com/verdantclub/ClubWheelBot_Go/internal/tier"
)

// Approvals defines how stored transfer requests enter operator review.
type Approvals interface {
	SubmitTransfer(ctx context.Context, req *domain.ApprovalRequest) error
}

// Service defines the interface for deposit and withdrawal operations
type Service interface {
	RequestDeposit(ctx context.Context, userID, username string, amount float64) (*domain.TransferRequest, error)
	RequestWithdrawal(ctx context.Context, userID, username string, amount float64) (*domain.TransferRequest, error)
	CreditsForDeposit(amount float64) (int, error)
}

type service struct {
	transfers repository.Transfer
	tiers     *tier.Resolver
	approvals Approvals
	publisher *event.ResilientPublisher
}

// NewService creates a new transfer service
func NewService(
	transfers repository.Transfer,
	tiers *tier.Resolver,
	approvals Approvals,
	publisher *event.ResilientPublisher,
) Service {
	return &service{
		transfers: transfers,
		tiers:     tiers,
		approvals: approvals,
		publisher: publisher,
	}
}

// RequestDeposit stores a deposit claim and opens its approval request.
// Credits are granted only when an operator approves.
func (s *service) RequestDeposit(ctx context.Context, userID, username string, amount float64) (*domain.TransferRequest, error) {
	return s.request(ctx, userID, username, domain.TransferDeposit, amount)
}

// RequestWithdrawal stores a withdrawal claim and opens its approval request.
func (s *service) RequestWithdrawal(ctx context.Context, userID, username string, amount float64) (*domain.TransferRequest, error) {
	return s.request(ctx, userID, username, domain.TransferWithdrawal, amount)
}

func (s *service) request(ctx context.Context, userID, username string, direction domain.TransferDirection, amount float64) (*domain.TransferRequest, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", domain.ErrInvalidAmount, amount)
	}

	req := &domain.TransferRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		Direction: direction,
		Amount:    amount,
		Status:    domain.ApprovalStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transfers.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store %s request: %w", direction, err)
	}

	subject := domain.SubjectDeposit
	if direction == domain.TransferWithdrawal {
		subject = domain.SubjectWithdrawal
	}

	approval := &domain.ApprovalRequest{
		ID:        req.ID,
		Subject:   subject,
		UserID:    userID,
		Username:  username,
		Amount:    int(math.Round(amount)),
		Status:    domain.ApprovalStatusPending,
		CreatedAt: req.CreatedAt,
	}

	if err := s.approvals.SubmitTransfer(ctx, approval); err != nil {
		// Stored but not fanned out; the reminder sweep cannot see it, so
		// surface the failure to the caller.
		return nil, fmt.Errorf("failed to open approval for %s request: %w", direction, err)
	}

	_ = s.publisher.Publish(ctx, event.NewTransferRequestedEvent(req))
	log.Info("Transfer request opened",
		"request_id", req.ID,
		"direction", direction,
		"user_id", userID,
		"amount", amount)

	return req, nil
}

// CreditsForDeposit previews the spin tickets a deposit amount earns.
func (s *service) CreditsForDeposit(amount float64) (int, error) {
	return s.tiers.CreditsForDeposit(amount)
}
