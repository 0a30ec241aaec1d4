package worker

import (
	"context"

	"github.com/verdantclub/ClubWheelBot_Go/internal/anticheat"
	"github.com/verdantclub/ClubWheelBot_Go/internal/logger"
)

// PruneWorker drops fully-expired anti-cheat windows so idle users do not
// accumulate throttle state forever.
type PruneWorker struct {
	guard *anticheat.Guard
}

// NewPruneWorker creates a new PruneWorker
func NewPruneWorker(guard *anticheat.Guard) *PruneWorker {
	return &PruneWorker{guard: guard}
}

// Process implements [Job]
func (w *PruneWorker) Process(ctx context.Context) error {
	removed := w.guard.Prune()
	if removed > 0 {
		logger.FromContext(ctx).Debug(LogMsgWindowsPruned, "removed", removed)
	}
	return nil
}
