package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	received := 0
	bus.Subscribe(RewardPending, func(ctx context.Context, e Event) error {
		received++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: RewardPending})
	require.NoError(t, err)
	assert.Equal(t, 1, received)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: ApprovalResolved}))
}

func TestMemoryBusHandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(SpinBatchCompleted, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(SpinBatchCompleted, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: SpinBatchCompleted})
	require.Error(t, err)
	assert.Equal(t, 2, calls, "a failing handler must not starve later ones")
	assert.Contains(t, err.Error(), "1 handler error(s)")
}

func TestNewApprovalResolvedEvent(t *testing.T) {
	req := &domain.ApprovalRequest{
		Subject:    domain.SubjectRewardBatch,
		UserID:     "user-1",
		Amount:     42,
		ResolvedBy: "op-1",
	}

	e := NewApprovalResolvedEvent(req, domain.DecisionApprove)
	assert.Equal(t, ApprovalResolved, e.Type)
	assert.Equal(t, EventSchemaVersion, e.Version)

	payload, ok := e.Payload.(domain.ApprovalResolvedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "approve", payload.Decision)
	assert.Equal(t, "op-1", payload.ResolvedBy)
	assert.Equal(t, 42, payload.Amount)
}
