package spin

import "time"

const (
	// MaxBatchSize bounds one request; larger batches are rejected before
	// any state is touched.
	MaxBatchSize = 100

	// Account lock key prefix, one lock per user.
	lockKeyPrefix = "spin-account:"

	// SurpriseRewardLabel names the per-batch bonus reward event.
	SurpriseRewardLabel = "Surprise bonus"

	// Account read cache sizing.
	AccountCacheSize = 1000
	AccountCacheTTL  = 30 * time.Second
)
