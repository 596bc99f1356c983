// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"minibank/internal/api/types"
	"minibank/internal/util"
)

// respondWithJSON writes a JSON response with the given status code.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP status codes and a uniform
// {"error": ...} payload. Unrecognized errors become an opaque 500.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = "Invalid amount"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusBadRequest
		message = "Insufficient funds"
	case util.IsError(err, util.ErrSelfTransfer):
		statusCode = http.StatusBadRequest
		message = "You cannot transfer money to yourself."
	case util.IsError(err, util.ErrSenderAccountNotFound):
		statusCode = http.StatusNotFound
		message = "Sender account not found"
	case util.IsError(err, util.ErrRecipientNotFound):
		statusCode = http.StatusNotFound
		message = "Recipient not found"
	case util.IsError(err, util.ErrRecipientAccountNotFound):
		statusCode = http.StatusNotFound
		message = "Recipient account not found"
	case util.IsError(err, util.ErrAccountNotFound):
		statusCode = http.StatusNotFound
		message = "Account not found"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusBadRequest
		message = "Username or email already exists"
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid credentials"
	case util.IsError(err, util.ErrTransferFailed):
		statusCode = http.StatusInternalServerError
		message = "Transfer failed due to server error"
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid input provided"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, types.ErrorResponse{Error: message})
}
