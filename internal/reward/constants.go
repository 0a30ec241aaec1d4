package reward

// Milestone block sizes, evaluated smallest-to-largest. At most one
// milestone fires per spin; a position satisfying several sizes only ever
// pays the smallest (observed product behavior, kept deliberately).
var MilestoneSizes = []int{10, 50, 100, 500, 1000}

// Entry is one weighted outcome in a pool. Weights need not sum to any
// fixed total; only the ratio matters.
type Entry struct {
	Label  string
	Chips  int
	Weight int
}

// DefaultPool is the real-reward pool drawn when a milestone fires.
var DefaultPool = []Entry{
	{Label: "5 chips", Chips: 5, Weight: 40},
	{Label: "10 chips", Chips: 10, Weight: 30},
	{Label: "25 chips", Chips: 25, Weight: 15},
	{Label: "50 chips", Chips: 50, Weight: 10},
	{Label: "100 chips", Chips: 100, Weight: 5},
}

// DisplayPool is the decorative pool shown during a spin's animation. Every
// entry is worth zero; the draw has no causal link to real rewards.
var DisplayPool = []Entry{
	{Label: "Better luck next time", Weight: 40},
	{Label: "Golden Wheel", Weight: 5},
	{Label: "Lucky Clover", Weight: 15},
	{Label: "Silver Star", Weight: 20},
	{Label: "Club Crest", Weight: 20},
}

// Surprise reward: batches of at least MinSurpriseBatch spins roll once per
// batch with SurpriseProbability for a uniform chip value in
// [SurpriseMinChips, SurpriseMaxChips].
const (
	MinSurpriseBatch    = 10
	SurpriseProbability = 0.8
	SurpriseMinChips    = 1
	SurpriseMaxChips    = 20
)
