package repository

import (
	"context"

	"github.com/verdantclub/ClubWheelBot_Go/internal/logger"
)

// ErrMsgTxClosed matches the pgx "tx is closed" error text produced when a
// rollback follows a successful commit.
const ErrMsgTxClosed = "tx is closed"

// SafeRollback rolls back a spin transaction and logs any unexpected error.
func SafeRollback(ctx context.Context, tx SpinTx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after a successful commit reports the tx as closed.
		if err.Error() != ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
