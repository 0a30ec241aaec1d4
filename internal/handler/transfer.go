package handler

import (
	"net/http"
	"strconv"

	"github.com/verdantclub/ClubWheelBot_Go/internal/transfer"
)

// TransferHandler handles deposit and withdrawal HTTP requests
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(service transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// TransferRequestBody represents a deposit or withdrawal submission
type TransferRequestBody struct {
	UserID   string  `json:"user_id" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// TransferResponse reports the stored request awaiting operator review
type TransferResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// HandleRequestDeposit records a deposit and queues it for operator approval
// @Summary Submit a deposit
// @Description Records a deposit request; spin credits are granted once an operator approves it
// @Tags transfer
// @Accept json
// @Produce json
// @Param request body TransferRequestBody true "Deposit request"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} ErrorResponse
// @Router /deposit [post]
func (h *TransferHandler) HandleRequestDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TransferRequestBody
	if err := DecodeAndValidateRequest(r, w, &req, "Request deposit"); err != nil {
		return
	}

	stored, err := h.service.RequestDeposit(ctx, req.UserID, req.Username, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Request deposit", err)
		return
	}

	respondJSON(w, http.StatusCreated, TransferResponse{
		Message:   MsgDepositSubmitted,
		RequestID: stored.ID.String(),
		Status:    string(stored.Status),
	})
}

// HandleRequestWithdrawal records a withdrawal and queues it for operator approval
// @Summary Submit a withdrawal
// @Description Records a withdrawal request for operator review
// @Tags transfer
// @Accept json
// @Produce json
// @Param request body TransferRequestBody true "Withdrawal request"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} ErrorResponse
// @Router /withdrawal [post]
func (h *TransferHandler) HandleRequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TransferRequestBody
	if err := DecodeAndValidateRequest(r, w, &req, "Request withdrawal"); err != nil {
		return
	}

	stored, err := h.service.RequestWithdrawal(ctx, req.UserID, req.Username, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Request withdrawal", err)
		return
	}

	respondJSON(w, http.StatusCreated, TransferResponse{
		Message:   MsgWithdrawalSubmitted,
		RequestID: stored.ID.String(),
		Status:    string(stored.Status),
	})
}

// DepositCreditsResponse reports the spin credits a deposit amount would grant
type DepositCreditsResponse struct {
	Amount  float64 `json:"amount"`
	Credits int     `json:"credits"`
}

// HandleGetDepositCredits previews the spin credits for a deposit amount
// @Summary Preview deposit credits
// @Description Returns the spin credits the given deposit amount would grant on approval
// @Tags transfer
// @Produce json
// @Param amount query number true "Deposit amount"
// @Success 200 {object} DepositCreditsResponse
// @Failure 400 {object} ErrorResponse
// @Router /deposit/credits [get]
func (h *TransferHandler) HandleGetDepositCredits(w http.ResponseWriter, r *http.Request) {
	raw, ok := GetQueryParam(r, w, "amount")
	if !ok {
		return
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAmountHTTP)
		return
	}

	credits, err := h.service.CreditsForDeposit(amount)
	if err != nil {
		respondServiceError(w, r, "Deposit credits", err)
		return
	}

	respondJSON(w, http.StatusOK, DepositCreditsResponse{Amount: amount, Credits: credits})
}
