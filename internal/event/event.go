package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// EventSchemaVersion is stamped on every published event.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event types published by the reward engine.
const (
	SpinBatchCompleted  Type = domain.EventSpinBatchCompleted
	RewardPending       Type = domain.EventRewardPending
	ApprovalResolved    Type = domain.EventApprovalResolved
	DepositRequested    Type = domain.EventDepositRequested
	WithdrawalRequested Type = domain.EventWithdrawalRequested
)

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// NewSpinBatchCompletedEvent builds the event published after a batch settles.
func NewSpinBatchCompletedEvent(result *domain.SpinBatchResult, username string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinBatchCompleted,
		Payload: domain.SpinBatchCompletedPayloadV1{
			UserID:         result.UserID,
			Username:       username,
			BatchSize:      result.BatchSize,
			RewardCount:    len(result.RewardEvents()),
			PendingChips:   result.PendingChips,
			RemainingSpins: result.RemainingSpins,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewRewardPendingEvent builds the event published when an approval request
// fans out to operators.
func NewRewardPendingEvent(req *domain.ApprovalRequest, eventCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardPending,
		Payload: domain.RewardPendingPayloadV1{
			RequestID:  req.ID,
			UserID:     req.UserID,
			Username:   req.Username,
			TotalChips: req.Amount,
			EventCount: eventCount,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewApprovalResolvedEvent builds the event published exactly once per
// request, by the winning resolver.
func NewApprovalResolvedEvent(req *domain.ApprovalRequest, decision domain.ApprovalDecision) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ApprovalResolved,
		Payload: domain.ApprovalResolvedPayloadV1{
			RequestID:  req.ID,
			Subject:    req.Subject,
			UserID:     req.UserID,
			Decision:   string(decision),
			ResolvedBy: req.ResolvedBy,
			Amount:     req.Amount,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewTransferRequestedEvent builds the event published when a deposit or
// withdrawal request is stored and awaits review.
func NewTransferRequestedEvent(req *domain.TransferRequest) Event {
	t := DepositRequested
	if req.Direction == domain.TransferWithdrawal {
		t = WithdrawalRequested
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.TransferRequestedPayloadV1{
			RequestID: req.ID,
			UserID:    req.UserID,
			Direction: req.Direction,
			Amount:    req.Amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a handler error never prevents other handlers from running.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
