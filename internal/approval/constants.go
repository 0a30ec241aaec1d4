package approval

import "time"

const (
	// NotifyTimeout bounds each operator delivery attempt.
	NotifyTimeout = 10 * time.Second

	// DefaultReminderThreshold is how long a request may sit pending before
	// the reminder sweep re-pings operators.
	DefaultReminderThreshold = 15 * time.Minute

	// ResolvedRetention is how long a resolved request stays in the
	// registry so a late action is told who resolved it rather than
	// getting an unknown-request error.
	ResolvedRetention = time.Hour
)
