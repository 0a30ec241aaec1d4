package discord

// Friendly message constants for Discord responses
const (
	// Spin credits
	MsgInsufficientCredits = "🎟️ **Not Enough Spin Credits!**\nDeposit to earn more spins."
	MsgThrottled           = "⏳ **Whoa there!**\nYou're spinning too fast. Give it a moment."

	// Accounts
	MsgAccountNotFound = "👤 **No Spin Account**\nMake a deposit or spin the wheel to get started."

	// Approvals
	MsgAlreadyProcessed = "✅ **Already Handled**\nAnother operator got to this one first."
	MsgRequestNotFound  = "❓ **Request Not Found**\nIt may have already been resolved."

	MsgGenericError = "❌ Something went wrong."
)
