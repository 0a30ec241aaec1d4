package handler

import (
	"net/http"

	"github.com/verdantclub/ClubWheelBot_Go/internal/domain"
	"github.com/verdantclub/ClubWheelBot_Go/internal/spin"
)

// SpinHandler handles spin-related HTTP requests
type SpinHandler struct {
	service spin.Service
}

// NewSpinHandler creates a new spin handler
func NewSpinHandler(service spin.Service) *SpinHandler {
	return &SpinHandler{service: service}
}

// RequestSpinsRequest represents a request to spin a batch of the wheel
type RequestSpinsRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	BatchSize int    `json:"batch_size" validate:"required,min=1,max=100"`
}

// HandleRequestSpins processes a batch spin request
// @Summary Spin the wheel
// @Description Spends spin credits on a batch of wheel spins and returns the outcomes
// @Tags spin
// @Accept json
// @Produce json
// @Param request body RequestSpinsRequest true "Spin batch request"
// @Success 200 {object} domain.SpinBatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /spin/request [post]
func (h *SpinHandler) HandleRequestSpins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RequestSpinsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Request spins"); err != nil {
		return
	}

	result, err := h.service.RequestSpins(ctx, req.UserID, req.Username, req.BatchSize)
	if err != nil {
		respondServiceError(w, r, "Request spins", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetAccount returns a user's spin account
// @Summary Get spin account
// @Description Returns the spin account for the given user
// @Tags spin
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.SpinAccount
// @Failure 404 {object} ErrorResponse
// @Router /spin/account [get]
func (h *SpinHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	account, err := h.service.GetAccount(ctx, userID)
	if err != nil {
		respondServiceError(w, r, "Get account", err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// HandleGetPending returns a user's rewards awaiting operator approval
// @Summary Get pending rewards
// @Description Returns the spin events awaiting operator approval for the given user
// @Tags spin
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.PendingBatch
// @Router /spin/pending [get]
func (h *SpinHandler) HandleGetPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	pending, err := h.service.GetPending(ctx, userID)
	if err != nil {
		respondServiceError(w, r, "Get pending", err)
		return
	}

	respondJSON(w, http.StatusOK, pending)
}

// SpinBatchResult is the response type (same as domain.SpinBatchResult but explicitly defined for API)
type SpinBatchResult = domain.SpinBatchResult
