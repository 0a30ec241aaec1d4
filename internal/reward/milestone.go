package reward

import (
	"fmt"
	"hash/fnv"
)

// TargetPosition derives the one position in [1, milestone] at which a real
// reward fires within each repeating block of `milestone` spins for this
// user. The value is a pure function of (userID, milestone): stable across
// restarts and never re-randomized per block, so no generator state is
// shared or reseeded.
func TargetPosition(userID string, milestone int) int {
	if milestone <= 0 {
		return 0
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d", userID, milestone)
	return int(h.Sum64()%uint64(milestone)) + 1
}

// BlockPosition maps a lifetime spin number n (1-indexed) to its position in
// the current block of the given milestone size.
func BlockPosition(n, milestone int) int {
	return ((n - 1) % milestone) + 1
}

// FiringMilestone returns the smallest milestone size whose target position
// matches spin n for this user, or 0 when no milestone fires. Sizes are
// checked smallest-first and evaluation stops at the first hit, so at most
// one milestone pays per spin.
func FiringMilestone(userID string, n int, sizes []int) int {
	for _, m := range sizes {
		if BlockPosition(n, m) == TargetPosition(userID, m) {
			return m
		}
	}
	return 0
}
