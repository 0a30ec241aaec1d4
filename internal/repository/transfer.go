package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// Transfer defines the persistence interface for deposit and withdrawal
// requests, which share the approval protocol with reward batches.
type Transfer interface {
	// CreateRequest stores a new pending deposit or withdrawal.
	CreateRequest(ctx context.Context, req *domain.TransferRequest) error

	// GetRequest fetches a stored request.
	// Returns domain.ErrRequestNotFound when absent.
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error)

	// ResolveRequestIfPending performs a compare-and-swap on the request
	// status: pending -> the terminal status, recording the resolver.
	// Returns the number of rows affected (0 when the request was already
	// terminal), so exactly one of two racing resolvers wins.
	ResolveRequestIfPending(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, resolvedBy string) (int64, error)
}
