package repository

import (
	"context"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// Account defines the persistence interface for spin accounts.
//
// SpendSpins and CreditEarnings are the only mutators of the lifetime
// counters. SpendSpins must reject a batch larger than the available credits
// without any state change; CreditEarnings is called only from the approval
// path, never from spin generation.
type Account interface {
	// GetAccount fetches an account by user id.
	// Returns domain.ErrAccountNotFound when absent.
	GetAccount(ctx context.Context, userID string) (*domain.SpinAccount, error)

	// GetOrCreateAccount fetches the account, creating an empty one on first
	// deposit or first spin.
	GetOrCreateAccount(ctx context.Context, userID, username string) (*domain.SpinAccount, error)

	// AddSpins grants tickets to an account (deposit approval path).
	AddSpins(ctx context.Context, userID string, spins int) error

	// BeginSpinTx opens a transaction covering a spin batch: the ticket
	// debit, used-count increment, and event inserts commit atomically.
	BeginSpinTx(ctx context.Context) (SpinTx, error)

	// CreditEarnings atomically increments total_chips_earned. Used only by
	// the approval coordinator.
	CreditEarnings(ctx context.Context, userID string, chips int) error
}

// SpinTx is the transactional view used while settling one spin batch.
type SpinTx interface {
	// SpendSpins debits available tickets and bumps the used counter,
	// returning the account state after the debit. Returns
	// domain.ErrInsufficientCredits without modifying anything when the
	// batch exceeds the available tickets.
	SpendSpins(ctx context.Context, userID string, batchSize int) (*domain.SpinAccount, error)

	// InsertEvents records the batch's spin events, Pending status included.
	InsertEvents(ctx context.Context, events []domain.SpinEvent) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
