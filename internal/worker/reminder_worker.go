package worker

import (
	"context"
	"time"

	"github.com/verdantclub/ClubWheelBot_Go/internal/approval"
	"github.com/verdantclub/ClubWheelBot_Go/internal/logger"
)

// ReminderWorker re-pings operators about approval requests that have sat
// pending for longer than the threshold. Delivery is best effort; the sweep
// never mutates request state.
type ReminderWorker struct {
	coordinator approval.Coordinator
	threshold   time.Duration
}

// NewReminderWorker creates a new ReminderWorker
func NewReminderWorker(coordinator approval.Coordinator, threshold time.Duration) *ReminderWorker {
	return &ReminderWorker{
		coordinator: coordinator,
		threshold:   threshold,
	}
}

// Process implements [Job]
func (w *ReminderWorker) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	stale := w.coordinator.PendingOlderThan(w.threshold)
	if len(stale) == 0 {
		return nil
	}

	log.Info(LogMsgReminderSweepStarting, "pending_count", len(stale))
	for _, req := range stale {
		w.coordinator.Remind(ctx, req)
		log.Info(LogMsgReminderSent,
			"request_id", req.ID,
			"subject", req.Subject,
			"pending_since", req.CreatedAt)
	}
	return nil
}
