package notify

const (
	// Button custom ID prefixes; the request id follows the colon.
	CustomIDApprovePrefix = "approval_approve:"
	CustomIDRejectPrefix  = "approval_reject:"

	// Embed colors.
	ColorPending  = 0xF1C40F // amber
	ColorApproved = 0x2ECC71 // green
	ColorRejected = 0xE74C3C // red

	// HandleSeparator joins channel and message ids into one opaque handle.
	HandleSeparator = "|"
)

// Reveal animation pacing: frames shown per reveal and edits between frames
// are shaped by the edit gate, so the frame count bounds total duration.
const RevealFrames = 4
