package domain

import "github.com/google/uuid"

// Event type name constants used by the event bus.
const (
	EventSpinBatchCompleted  = "spin.batch.completed"
	EventRewardPending       = "reward.pending"
	EventApprovalResolved    = "approval.resolved"
	EventDepositRequested    = "deposit.requested"
	EventWithdrawalRequested = "withdrawal.requested"
)

// SpinBatchCompletedPayloadV1 is published after a batch of spins settles.
type SpinBatchCompletedPayloadV1 struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	BatchSize      int    `json:"batch_size"`
	RewardCount    int    `json:"reward_count"`
	PendingChips   int    `json:"pending_chips"`
	RemainingSpins int    `json:"remaining_spins"`
	Timestamp      int64  `json:"timestamp"`
}

// RewardPendingPayloadV1 is published when a reward batch enters the ledger
// and an approval request fans out to operators.
type RewardPendingPayloadV1 struct {
	RequestID  uuid.UUID `json:"request_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	TotalChips int       `json:"total_chips"`
	EventCount int       `json:"event_count"`
	Timestamp  int64     `json:"timestamp"`
}

// ApprovalResolvedPayloadV1 is published once per request, by the winning
// resolver only.
type ApprovalResolvedPayloadV1 struct {
	RequestID  uuid.UUID       `json:"request_id"`
	Subject    ApprovalSubject `json:"subject"`
	UserID     string          `json:"user_id"`
	Decision   string          `json:"decision"`
	ResolvedBy string          `json:"resolved_by"`
	Amount     int             `json:"amount"`
	Timestamp  int64           `json:"timestamp"`
}

// TransferRequestedPayloadV1 covers deposit.requested and withdrawal.requested.
type TransferRequestedPayloadV1 struct {
	RequestID uuid.UUID         `json:"request_id"`
	UserID    string            `json:"user_id"`
	Direction TransferDirection `json:"direction"`
	Amount    float64           `json:"amount"`
	Timestamp int64             `json:"timestamp"`
}
