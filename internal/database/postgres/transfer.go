package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// TransferRepository implements deposit/withdrawal request storage for PostgreSQL
type TransferRepository struct {
	db *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository
func NewTransferRepository(db *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{db: db}
}

// CreateRequest stores a new pending deposit or withdrawal
func (r *TransferRepository) CreateRequest(ctx context.Context, req *domain.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (request_id, user_id, username, direction, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.UserID, req.Username, string(req.Direction), req.Amount, string(req.Status), req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transfer request: %w", err)
	}
	return nil
}

// GetRequest fetches a stored request by id
func (r *TransferRepository) GetRequest(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	query := `
		SELECT request_id, user_id, username, direction, amount, status, resolved_by, created_at
		FROM transfer_requests
		WHERE request_id = $1
	`
	var req domain.TransferRequest
	var direction, status string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.Username, &direction, &req.Amount, &status, &req.ResolvedBy, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get transfer request: %w", err)
	}
	req.Direction = domain.TransferDirection(direction)
	req.Status = domain.ApprovalStatus(status)
	return &req, nil
}

// ResolveRequestIfPending performs a compare-and-swap on the request status.
// Zero rows affected means a racing resolver already won.
func (r *TransferRepository) ResolveRequestIfPending(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, resolvedBy string) (int64, error) {
	query := `
		UPDATE transfer_requests
		SET status = $1, resolved_by = $2
		WHERE request_id = $3 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, string(status), resolvedBy, id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve transfer request: %w", err)
	}
	return tag.RowsAffected(), nil
}
