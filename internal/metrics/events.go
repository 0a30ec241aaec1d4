package metrics

import (
	"context"
	"strconv"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SpinBatchCompleted,
		event.RewardPending,
		event.ApprovalResolved,
		event.DepositRequested,
		event.WithdrawalRequested,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case domain.SpinBatchCompletedPayloadV1:
		SpinBatches.Inc()
		SpinsRequested.Add(float64(payload.BatchSize))
	case domain.ApprovalResolvedPayloadV1:
		ApprovalsResolved.WithLabelValues(string(payload.Subject), payload.Decision).Inc()
		if payload.Decision == string(domain.DecisionApprove) && payload.Subject == domain.SubjectRewardBatch {
			ChipsCredited.Add(float64(payload.Amount))
		}
	}

	return nil
}

// MilestoneLabel formats a milestone size for the metric label.
func MilestoneLabel(size int) string {
	return strconv.Itoa(size)
}
