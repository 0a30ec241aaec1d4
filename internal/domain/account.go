package domain

import "time"

// SpinAccount is the per-user record of spin tickets and lifetime counters.
// Accounts are created on first deposit or first spin and are never deleted.
type SpinAccount struct {
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	AvailableSpins   int       `json:"available_spins"`
	TotalSpinsUsed   int       `json:"total_spins_used"`
	TotalChipsEarned int       `json:"total_chips_earned"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CanSpend reports whether the account holds enough tickets for a batch.
func (a *SpinAccount) CanSpend(batchSize int) bool {
	return batchSize > 0 && a.AvailableSpins >= batchSize
}
