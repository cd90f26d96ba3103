package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable error tag callers branch on. New kinds may be added;
// existing values never change.
type Kind string

const (
	KindInvalidArgument  Kind = "INVALID_ARGUMENT"
	KindInvalidQuantity  Kind = "INVALID_QUANTITY"
	KindInvalidAttendee  Kind = "INVALID_ATTENDEE"
	KindEventNotFound    Kind = "EVENT_NOT_FOUND"
	KindSlotNotFound     Kind = "SLOT_NOT_FOUND"
	KindBookingNotFound  Kind = "BOOKING_NOT_FOUND"
	KindSlotUnavailable  Kind = "SLOT_UNAVAILABLE"
	KindHoldInvalid      Kind = "HOLD_INVALID"
	KindCapacityExceeded Kind = "CAPACITY_EXCEEDED"
	KindTransientStorage Kind = "TRANSIENT_STORAGE"
	KindInternal         Kind = "INTERNAL"
)

// Error is a tagged error carrying a human-readable message. CapacityExceeded
// errors additionally carry the effective availability observed inside the
// failing transaction.
type Error struct {
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind while keeping the cause
// reachable through errors.Unwrap.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// CapacityExceeded builds the one error kind that carries a payload: the
// availability the caller should re-list against.
func CapacityExceeded(available int) *Error {
	return &Error{
		Kind:      KindCapacityExceeded,
		Message:   fmt.Sprintf("insufficient capacity: %d available", available),
		Available: &available,
	}
}

// KindOf extracts the kind from any error in the chain. Untagged errors are
// reported as Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to the status the HTTP surface reports.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidArgument, KindInvalidQuantity, KindInvalidAttendee:
		return http.StatusBadRequest
	case KindEventNotFound, KindSlotNotFound, KindBookingNotFound:
		return http.StatusNotFound
	case KindSlotUnavailable, KindHoldInvalid, KindCapacityExceeded:
		return http.StatusConflict
	case KindTransientStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
