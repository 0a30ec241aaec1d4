package domain

import (
	"time"

	"github.com/google/uuid"
)

// RewardSource identifies what triggered a real reward on a spin.
type RewardSource string

const (
	RewardSourceMilestone RewardSource = "milestone"
	RewardSourceSurprise  RewardSource = "surprise"
)

// EventStatus tracks the approval lifecycle of a spin event.
// The only legal transition is Pending -> Approved.
type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
)

// SpinEvent is one unit spin outcome. The display outcome is decorative and
// carries no value; ChipValue is non-zero only when a real reward fired.
// Immutable once created except for the Status transition.
type SpinEvent struct {
	ID             uuid.UUID    `json:"id"`
	UserID         string       `json:"user_id"`
	SpinNumber     int          `json:"spin_number"` // lifetime 1-indexed count
	DisplayOutcome string       `json:"display_outcome"`
	RewardLabel    string       `json:"reward_label,omitempty"`
	RewardSource   RewardSource `json:"reward_source,omitempty"`
	ChipValue      int          `json:"chip_value"`
	MilestoneSize  int          `json:"milestone_size,omitempty"`
	Status         EventStatus  `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

// HasReward reports whether the event carries a real reward payload.
func (e *SpinEvent) HasReward() bool {
	return e.ChipValue > 0
}

// SpinBatchResult is the outcome of one request_spins call.
type SpinBatchResult struct {
	UserID          string      `json:"user_id"`
	BatchSize       int         `json:"batch_size"`
	Events          []SpinEvent `json:"events"`
	RemainingSpins  int         `json:"remaining_spins"`
	PendingChips    int         `json:"pending_chips"`
	ApprovalRequest uuid.UUID   `json:"approval_request,omitempty"`
}

// RewardEvents returns only the events that carry a real reward.
func (r *SpinBatchResult) RewardEvents() []SpinEvent {
	var rewards []SpinEvent
	for _, e := range r.Events {
		if e.HasReward() {
			rewards = append(rewards, e)
		}
	}
	return rewards
}

// PendingBatch is the set of a user's spin events awaiting approval at a
// point in time, derived from the ledger rather than separately persisted.
type PendingBatch struct {
	UserID     string      `json:"user_id"`
	Events     []SpinEvent `json:"events"`
	TotalChips int         `json:"total_chips"`
}
