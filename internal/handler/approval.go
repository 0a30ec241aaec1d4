package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantclub/ClubWheelBot_Go/internal/approval"
	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
)

// ApprovalHandler handles operator approval HTTP requests
type ApprovalHandler struct {
	coordinator approval.Coordinator
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(coordinator approval.Coordinator) *ApprovalHandler {
	return &ApprovalHandler{coordinator: coordinator}
}

// ResolveRequest represents an operator decision on a pending request
type ResolveRequest struct {
	RequestID  string `json:"request_id" validate:"required,uuid"`
	OperatorID string `json:"operator_id" validate:"required"`
	Decision   string `json:"decision" validate:"required,decision"`
}

// HandleResolve applies an operator decision to a pending approval request.
// The first operator to resolve wins; later attempts get 409.
// @Summary Resolve a pending request
// @Description Approves or rejects a pending reward batch, deposit, or withdrawal
// @Tags approval
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Operator decision"
// @Success 200 {object} domain.ResolutionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /approval/resolve [post]
func (h *ApprovalHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResolveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve approval"); err != nil {
		return
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestID)
		return
	}

	decision := domain.ApprovalDecision(strings.ToLower(req.Decision))

	result, err := h.coordinator.Resolve(ctx, requestID, req.OperatorID, decision)
	if err != nil {
		respondServiceError(w, r, "Resolve approval", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
