package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
)

// AccountRepository implements the spin account repository for PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `user_id, username, available_spins, total_spins_used, total_chips_earned, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.SpinAccount, error) {
	var a domain.SpinAccount
	err := row.Scan(&a.UserID, &a.Username, &a.AvailableSpins, &a.TotalSpinsUsed, &a.TotalChipsEarned, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

// GetAccount fetches an account by user id
func (r *AccountRepository) GetAccount(ctx context.Context, userID string) (*domain.SpinAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM spin_accounts WHERE user_id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, userID))
}

// GetOrCreateAccount fetches the account, creating an empty one on first use
func (r *AccountRepository) GetOrCreateAccount(ctx context.Context, userID, username string) (*domain.SpinAccount, error) {
	query := `
		INSERT INTO spin_accounts (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET username = CASE WHEN EXCLUDED.username <> '' THEN EXCLUDED.username ELSE spin_accounts.username END,
		    updated_at = NOW()
		RETURNING ` + accountColumns
	return scanAccount(r.db.QueryRow(ctx, query, userID, username))
}

// AddSpins grants tickets to an account (deposit approval path)
func (r *AccountRepository) AddSpins(ctx context.Context, userID string, spins int) error {
	query := `
		UPDATE spin_accounts
		SET available_spins = available_spins + $1, updated_at = NOW()
		WHERE user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, spins, userID)
	if err != nil {
		return fmt.Errorf("failed to add spins: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// CreditEarnings atomically increments total_chips_earned
func (r *AccountRepository) CreditEarnings(ctx context.Context, userID string, chips int) error {
	query := `
		UPDATE spin_accounts
		SET total_chips_earned = total_chips_earned + $1, updated_at = NOW()
		WHERE user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, chips, userID)
	if err != nil {
		return fmt.Errorf("failed to credit earnings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// BeginSpinTx opens a transaction covering one spin batch
func (r *AccountRepository) BeginSpinTx(ctx context.Context) (repository.SpinTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &spinTx{tx: tx}, nil
}

type spinTx struct {
	tx pgx.Tx
}

// SpendSpins debits tickets and bumps the used counter in one statement. The
// WHERE guard makes an oversized batch a no-op, which maps to
// ErrInsufficientCredits.
func (t *spinTx) SpendSpins(ctx context.Context, userID string, batchSize int) (*domain.SpinAccount, error) {
	query := `
		UPDATE spin_accounts
		SET available_spins = available_spins - $1,
		    total_spins_used = total_spins_used + $1,
		    updated_at = NOW()
		WHERE user_id = $2 AND available_spins >= $1
		RETURNING ` + accountColumns

	account, err := scanAccount(t.tx.QueryRow(ctx, query, batchSize, userID))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Distinguish "no such account" from "not enough credits".
			var exists bool
			checkErr := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM spin_accounts WHERE user_id = $1)`, userID).Scan(&exists)
			if checkErr != nil {
				return nil, fmt.Errorf("failed to check account existence: %w", checkErr)
			}
			if exists {
				return nil, domain.ErrInsufficientCredits
			}
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// InsertEvents records the batch's spin events
func (t *spinTx) InsertEvents(ctx context.Context, events []domain.SpinEvent) error {
	query := `
		INSERT INTO spin_events
			(event_id, user_id, spin_number, display_outcome, reward_label, reward_source, chip_value, milestone_size, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, e := range events {
		_, err := t.tx.Exec(ctx, query,
			e.ID, e.UserID, e.SpinNumber, e.DisplayOutcome, e.RewardLabel,
			string(e.RewardSource), e.ChipValue, e.MilestoneSize, string(e.Status), e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert spin event %s: %w", e.ID, err)
		}
	}
	return nil
}

func (t *spinTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *spinTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }
