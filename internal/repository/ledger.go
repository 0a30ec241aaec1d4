package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// Ledger defines the persistence interface for the pending reward ledger.
type Ledger interface {
	// ListPending returns the user's Pending spin events, oldest first.
	ListPending(ctx context.Context, userID string) ([]domain.SpinEvent, error)

	// ApproveEvents marks the given event ids Approved and increments the
	// owner's earnings by their chip sum, as one atomic unit. The transition
	// is conditional on each event still being Pending (compare-and-swap,
	// not overwrite); already-approved events are skipped and contribute
	// nothing. Returns the chip total actually credited.
	ApproveEvents(ctx context.Context, userID string, eventIDs []uuid.UUID) (int, error)

	// DiscardEvents removes the given events from the pending set after a
	// rejection. No earnings change.
	DiscardEvents(ctx context.Context, userID string, eventIDs []uuid.UUID) error
}
