// internal/api/handler/bank.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"minibank/internal/auth"
	"minibank/internal/service"
	"minibank/internal/util"

	"github.com/shopspring/decimal"
)

// BankHandler handles the authenticated banking endpoints: transfer, balance
// and transaction history.
type BankHandler struct {
	service service.BankService
	logger  *slog.Logger
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(svc service.BankService, logger *slog.Logger) *BankHandler {
	return &BankHandler{
		service: svc,
		logger:  logger,
	}
}

// TransferRequest represents the request body for transfer. The amount is
// decoded straight into a decimal so no floating-point representation ever
// touches it.
type TransferRequest struct {
	RecipientUsername string          `json:"recipient_username"`
	Amount            decimal.Decimal `json:"amount"`
}

// Transfer handles the money transfer request.
// POST /transfer
func (h *BankHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidCredentials)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.RecipientUsername == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	_, err := h.service.Transfer(r.Context(), callerID, req.RecipientUsername, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{
		"message": "Transfer successful",
	})
}

// GetBalance handles the balance lookup request.
// GET /balance
func (h *BankHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidCredentials)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), callerID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"balance": balance,
	})
}

// GetTransactions handles the transaction history request.
// GET /transactions?page=1&limit=10
func (h *BankHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidCredentials)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	transactions, err := h.service.GetTransactionHistory(r.Context(), callerID, page, limit)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
	})
}
