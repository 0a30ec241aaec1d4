package domain

import (
	"time"

	"github.com/google/uuid"
)

// DepositTier pairs a deposit threshold with the spin tickets it grants.
type DepositTier struct {
	Threshold float64 `json:"threshold"`
	Spins     int     `json:"spins"`
}

// TransferDirection distinguishes deposits from withdrawals; both share the
// approval protocol.
type TransferDirection string

const (
	TransferDeposit    TransferDirection = "deposit"
	TransferWithdrawal TransferDirection = "withdrawal"
)

// TransferRequest is a stored deposit or withdrawal awaiting operator review.
type TransferRequest struct {
	ID         uuid.UUID         `json:"id"`
	UserID     string            `json:"user_id"`
	Username   string            `json:"username"`
	Direction  TransferDirection `json:"direction"`
	Amount     float64           `json:"amount"`
	Status     ApprovalStatus    `json:"status"`
	ResolvedBy string            `json:"resolved_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
