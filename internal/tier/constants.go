package tier

import "github.com/verdantclub/ClubWheelBot_Go/internal/domain"

// DefaultTable maps deposit amounts (currency units) to spin tickets.
// Thresholds and spin counts are monotonically increasing; amounts at or
// above the top threshold earn the fixed ceiling.
var DefaultTable = []domain.DepositTier{
	{Threshold: 100, Spins: 1},
	{Threshold: 300, Spins: 2},
	{Threshold: 500, Spins: 3},
	{Threshold: 1000, Spins: 5},
	{Threshold: 5000, Spins: 10},
}

// CeilingSpins is granted for any amount at or above the table maximum.
const CeilingSpins = 10
