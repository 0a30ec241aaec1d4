package approval

import (
	"context"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// Notifier delivers approval traffic to one operator at a time. The concrete
// implementation posts Discord messages with Approve/Reject controls; tests
// substitute a recorder.
//
// A handle identifies the delivered message so controls can later be edited
// or cleared. Delivery failures are reported but never block a state
// transition.
type Notifier interface {
	// NotifyPending posts the request with its decision controls and
	// returns a handle to the posted message.
	NotifyPending(ctx context.Context, operatorID string, req *domain.ApprovalRequest) (string, error)

	// NotifyResolved replaces a posted message with the resolution outcome,
	// removing the controls.
	NotifyResolved(ctx context.Context, operatorID, handle string, result *domain.ResolutionResult) error

	// ClearControls strips the decision controls from a posted message
	// without replacing its content. Used on the losing side of a race.
	ClearControls(ctx context.Context, operatorID, handle string) error

	// NotifyUser tells the requesting user how their request was decided.
	// Best effort, same as every other delivery.
	NotifyUser(ctx context.Context, userID string, result *domain.ResolutionResult) error
}
