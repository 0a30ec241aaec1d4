package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalSubject is the kind of work an ApprovalRequest covers. The spin
// reward batch is one subject among several sharing the same protocol.
type ApprovalSubject string

const (
	SubjectRewardBatch ApprovalSubject = "reward_batch"
	SubjectDeposit     ApprovalSubject = "deposit"
	SubjectWithdrawal  ApprovalSubject = "withdrawal"
)

// ApprovalStatus is the state of an ApprovalRequest. Terminal once non-Pending.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApprovalDecision is an operator's verdict on a pending request.
type ApprovalDecision string

const (
	DecisionApprove ApprovalDecision = "approve"
	DecisionReject  ApprovalDecision = "reject"
)

// Terminal maps a decision to the status it produces.
func (d ApprovalDecision) Terminal() ApprovalStatus {
	if d == DecisionApprove {
		return ApprovalStatusApproved
	}
	return ApprovalStatusRejected
}

// ApprovalRequest identifies one approvable unit of work. Status is
// write-once-effective: the first resolving operator wins, later actions
// observe the recorded resolver.
type ApprovalRequest struct {
	ID         uuid.UUID       `json:"id"`
	Subject    ApprovalSubject `json:"subject"`
	UserID     string          `json:"user_id"`
	Username   string          `json:"username"`
	EventIDs   []uuid.UUID     `json:"event_ids,omitempty"` // reward_batch only
	Amount     int             `json:"amount"`              // chips or currency units
	Status     ApprovalStatus  `json:"status"`
	ResolvedBy string          `json:"resolved_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}

// ResolutionResult reports the outcome of a resolve_pending call.
type ResolutionResult struct {
	RequestID  uuid.UUID        `json:"request_id"`
	Subject    ApprovalSubject  `json:"subject"`
	Decision   ApprovalDecision `json:"decision"`
	ResolvedBy string           `json:"resolved_by"`
	Applied    bool             `json:"applied"` // false when already processed
}
