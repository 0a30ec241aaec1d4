package ratelimit

import "time"

// Chat gateway ceilings. Edits may run at ~16/s, fresh sends at ~25/s, and
// at most MaxConcurrentReveals animated reveal sequences run at once.
const (
	EditSpacing          = time.Second / 16
	SendSpacing          = time.Second / 25
	MaxConcurrentReveals = 5
)
