package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to stay consistent.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."
	ErrMsgUnavailableError     = "Server is temporarily unavailable. Please try again later."

	// Spin account messages
	ErrMsgAccountNotFoundHTTP     = "Spin account not found"
	ErrMsgInsufficientCreditsHTTP = "Not enough spin credits"
	ErrMsgInvalidBatchSizeHTTP    = "Batch size must be between 1 and 100"
	ErrMsgThrottledRetryFormat    = "Too many spin requests. Try again in %d seconds."

	// Transfer messages
	ErrMsgInvalidAmountHTTP = "Amount must be greater than zero"

	// Approval messages
	ErrMsgRequestNotFoundHTTP    = "Approval request not found"
	ErrMsgEventNotFoundHTTP      = "Spin event not found"
	ErrMsgAlreadyProcessedHTTP   = "Request was already processed"
	ErrMsgAlreadyProcessedFormat = "Request was already %s by %s"
	ErrMsgInvalidDecision        = "Decision must be 'approve' or 'reject'"
	ErrMsgInvalidRequestID       = "Invalid request ID"

	// Operation failure messages
	ErrMsgRequestSpinsFailed      = "Failed to process spin request"
	ErrMsgGetAccountFailed        = "Failed to get spin account"
	ErrMsgGetPendingFailed        = "Failed to get pending rewards"
	ErrMsgRequestDepositFailed    = "Failed to submit deposit"
	ErrMsgRequestWithdrawalFailed = "Failed to submit withdrawal"
	ErrMsgResolveApprovalFailed   = "Failed to resolve approval request"
	ErrMsgCreditsLookupFailed     = "Failed to compute deposit credits"
)

// Success messages for API responses
const (
	MsgDepositSubmitted    = "Deposit submitted for operator review"
	MsgWithdrawalSubmitted = "Withdrawal submitted for operator review"
	MsgRequestApproved     = "Request approved"
	MsgRequestRejected     = "Request rejected"
)
