package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable half of a domain error. Callers branch
// on the code; the message is for humans.
type ErrorCode string

const (
	// Conflict: caller must retry with different input, never auto-retried.
	CodeRoomConflict               ErrorCode = "ROOM_CONFLICT"
	CodeDuplicatePaymentInProgress ErrorCode = "DUPLICATE_PAYMENT_IN_PROGRESS"

	// InvalidState: usage error on the caller's part, surfaced verbatim.
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeWrongState        ErrorCode = "WRONG_STATE"
	CodeAlreadyCheckedOut ErrorCode = "ALREADY_CHECKED_OUT"

	// ValidationFailure: user-correctable, returned with the missing condition.
	CodeInvalidInterval      ErrorCode = "INVALID_INTERVAL"
	CodeTermsNotAccepted     ErrorCode = "TERMS_NOT_ACCEPTED"
	CodeDocumentsNotVerified ErrorCode = "DOCUMENTS_NOT_VERIFIED"
	CodePaymentNotValidated  ErrorCode = "PAYMENT_NOT_VALIDATED"
	CodeInsufficientPayment  ErrorCode = "INSUFFICIENT_PAYMENT"
	CodeValidationFailed     ErrorCode = "VALIDATION_FAILED"

	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Error is a coded domain error. All business failures cross the service
// boundary as *Error; anything else is treated as transient.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the domain code from an error chain, or "" for
// non-domain (transient) errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func NewRoomConflict(roomNumber string) *Error {
	return NewError(CodeRoomConflict, "room %s already reserved for an overlapping interval", roomNumber)
}

func NewInvalidTransition(from, to ReservationStatus) *Error {
	return NewError(CodeInvalidTransition, "cannot transition reservation from %s to %s", from, to)
}

func NewDuplicatePaymentInProgress(reservationID int64) *Error {
	return NewError(CodeDuplicatePaymentInProgress, "reservation %d already has a payment in progress", reservationID)
}

func NewInvalidInterval(msg string) *Error {
	return NewError(CodeInvalidInterval, "%s", msg)
}

func NewWrongState(msg string, args ...any) *Error {
	return NewError(CodeWrongState, msg, args...)
}

func NewNotFound(what string, id any) *Error {
	return NewError(CodeNotFound, "%s %v not found", what, id)
}
