package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgAccountNotFound     = "spin account not found"
	ErrMsgEventNotFound       = "spin event not found"
	ErrMsgRequestNotFound     = "approval request not found"
	ErrMsgInsufficientCredits = "insufficient spin credits"
	ErrMsgThrottled           = "too many spin requests"
	ErrMsgAlreadyProcessed    = "already processed"
	ErrMsgInvalidBatchSize    = "invalid batch size"
	ErrMsgInvalidAmount       = "invalid amount"
	ErrMsgTransientIO         = "transient storage failure"
)

// Common domain errors.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrAccountNotFound     = errors.New(ErrMsgAccountNotFound)
	ErrEventNotFound       = errors.New(ErrMsgEventNotFound)
	ErrRequestNotFound     = errors.New(ErrMsgRequestNotFound)
	ErrInsufficientCredits = errors.New(ErrMsgInsufficientCredits)
	ErrThrottled           = errors.New(ErrMsgThrottled)
	ErrAlreadyProcessed    = errors.New(ErrMsgAlreadyProcessed)
	ErrInvalidBatchSize    = errors.New(ErrMsgInvalidBatchSize)
	ErrInvalidAmount       = errors.New(ErrMsgInvalidAmount)
	ErrTransientIO         = errors.New(ErrMsgTransientIO)
)

// ThrottledError is returned when the anti-cheat guard trips. The request is
// dropped with no partial effects.
type ThrottledError struct {
	UserID     string
	RetryAfter time.Duration
}

func (e ThrottledError) Error() string {
	return fmt.Sprintf("%s: user %s, retry in %ds", ErrMsgThrottled, e.UserID, int(e.RetryAfter.Seconds()))
}

// Is allows errors.Is(err, domain.ErrThrottled) to match.
func (e ThrottledError) Is(target error) bool {
	if target == ErrThrottled {
		return true
	}
	_, ok := target.(ThrottledError)
	return ok
}

// AlreadyProcessedError reports that an approval action arrived after the
// request reached a terminal state. Informational, never retried.
type AlreadyProcessedError struct {
	ResolvedBy string
	Status     ApprovalStatus
}

func (e AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s by %s (%s)", ErrMsgAlreadyProcessed, e.ResolvedBy, e.Status)
}

// Is allows errors.Is(err, domain.ErrAlreadyProcessed) to match.
func (e AlreadyProcessedError) Is(target error) bool {
	if target == ErrAlreadyProcessed {
		return true
	}
	_, ok := target.(AlreadyProcessedError)
	return ok
}

// NotificationDeliveryError records a failed send/edit/clear toward one
// operator. Logged only; never affects the primary state transition.
type NotificationDeliveryError struct {
	OperatorID string
	Op         string
	Err        error
}

func (e NotificationDeliveryError) Error() string {
	return fmt.Sprintf("notification %s to operator %s failed: %v", e.Op, e.OperatorID, e.Err)
}

func (e NotificationDeliveryError) Unwrap() error { return e.Err }
