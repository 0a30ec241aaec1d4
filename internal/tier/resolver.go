package tier

import (
	"fmt"
	"sort"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// Resolver converts deposit amounts into spin tickets using a static,
// read-only tier table. Pure; the only failure mode is negative input.
type Resolver struct {
	table []domain.DepositTier
}

// NewResolver creates a Resolver from a tier table. The table is copied and
// sorted by threshold so callers cannot mutate it afterwards.
func NewResolver(table []domain.DepositTier) *Resolver {
	owned := make([]domain.DepositTier, len(table))
	copy(owned, table)
	sort.Slice(owned, func(i, j int) bool { return owned[i].Threshold < owned[j].Threshold })
	return &Resolver{table: owned}
}

// NewDefaultResolver creates a Resolver over the built-in tier table.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultTable)
}

// CreditsForDeposit returns the spin tickets earned by a deposit: the spin
// count of the highest threshold <= amount. Amounts below the lowest
// threshold earn 0; amounts at or above the maximum earn the ceiling.
func (r *Resolver) CreditsForDeposit(amount float64) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: deposit amount %.2f is negative", domain.ErrInvalidAmount, amount)
	}
	if len(r.table) == 0 {
		return 0, nil
	}

	if amount >= r.table[len(r.table)-1].Threshold {
		return CeilingSpins, nil
	}

	credits := 0
	for _, t := range r.table {
		if amount < t.Threshold {
			break
		}
		credits = t.Spins
	}
	return credits, nil
}
