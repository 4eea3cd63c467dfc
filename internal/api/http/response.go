package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps domain codes onto HTTP statuses. Non-domain errors are
// treated as transient and hidden behind a 500.
func respondError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	if code == "" {
		logger.Error("Internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError,
			errorBody{Code: "INTERNAL", Message: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch code {
	case domain.CodeRoomConflict,
		domain.CodeDuplicatePaymentInProgress,
		domain.CodeInvalidTransition,
		domain.CodeWrongState,
		domain.CodeAlreadyCheckedOut:
		status = http.StatusConflict
	case domain.CodeInvalidInterval,
		domain.CodeTermsNotAccepted,
		domain.CodeDocumentsNotVerified,
		domain.CodePaymentNotValidated,
		domain.CodeInsufficientPayment,
		domain.CodeValidationFailed:
		status = http.StatusUnprocessableEntity
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeUnauthorized:
		status = http.StatusUnauthorized
	}

	var de *domain.Error
	msg := err.Error()
	if errors.As(err, &de) {
		msg = de.Message
	}
	respondJSON(w, status, errorBody{Code: string(code), Message: msg})
}
