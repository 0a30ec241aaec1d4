package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// LedgerRepository implements the pending reward ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const eventColumns = `event_id, user_id, spin_number, display_outcome, reward_label, reward_source, chip_value, milestone_size, status, created_at`

// ListPending returns the user's pending spin events, oldest first
func (r *LedgerRepository) ListPending(ctx context.Context, userID string) ([]domain.SpinEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM spin_events
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY created_at, spin_number
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	defer rows.Close()

	var events []domain.SpinEvent
	for rows.Next() {
		var e domain.SpinEvent
		var source, status string
		err := rows.Scan(&e.ID, &e.UserID, &e.SpinNumber, &e.DisplayOutcome, &e.RewardLabel,
			&source, &e.ChipValue, &e.MilestoneSize, &status, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spin event: %w", err)
		}
		e.RewardSource = domain.RewardSource(source)
		e.Status = domain.EventStatus(status)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pending events: %w", err)
	}
	return events, nil
}

// ApproveEvents flips the given events to approved and credits their chip sum
// to the owner, in one transaction. The status guard in the UPDATE makes the
// transition conditional: events already approved by a racing resolver are
// skipped and contribute nothing to the credited total.
func (r *LedgerRepository) ApproveEvents(ctx context.Context, userID string, eventIDs []uuid.UUID) (int, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	flip := `
		UPDATE spin_events
		SET status = 'approved'
		WHERE event_id = ANY($1) AND user_id = $2 AND status = 'pending'
		RETURNING chip_value
	`
	rows, err := tx.Query(ctx, flip, eventIDs, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to approve events: %w", err)
	}
	total := 0
	for rows.Next() {
		var chips int
		if err := rows.Scan(&chips); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan chip value: %w", err)
		}
		total += chips
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read approved events: %w", err)
	}

	if total > 0 {
		credit := `
			UPDATE spin_accounts
			SET total_chips_earned = total_chips_earned + $1, updated_at = NOW()
			WHERE user_id = $2
		`
		tag, err := tx.Exec(ctx, credit, total, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to credit earnings: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return 0, domain.ErrAccountNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit approval: %w", err)
	}
	return total, nil
}

// DiscardEvents removes rejected events from the pending set. Events a racing
// approval already flipped are left alone.
func (r *LedgerRepository) DiscardEvents(ctx context.Context, userID string, eventIDs []uuid.UUID) error {
	if len(eventIDs) == 0 {
		return nil
	}
	query := `
		DELETE FROM spin_events
		WHERE event_id = ANY($1) AND user_id = $2 AND status = 'pending'
	`
	_, err := r.db.Exec(ctx, query, eventIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to discard events: %w", err)
	}
	return nil
}
