package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSlotNotFound, KindOf(New(KindSlotNotFound, "gone")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))

	// Tags survive wrapping with %w.
	wrapped := fmt.Errorf("outer: %w", New(KindHoldInvalid, "expired"))
	assert.Equal(t, KindHoldInvalid, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindHoldInvalid))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindTransientStorage, "query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "TRANSIENT_STORAGE")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCapacityExceededPayload(t *testing.T) {
	err := CapacityExceeded(2)

	var appErr *Error
	require.ErrorAs(t, error(err), &appErr)
	require.NotNil(t, appErr.Available)
	assert.Equal(t, 2, *appErr.Available)
	assert.Equal(t, KindCapacityExceeded, appErr.Kind)
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindInvalidArgument, http.StatusBadRequest},
		{KindInvalidQuantity, http.StatusBadRequest},
		{KindInvalidAttendee, http.StatusBadRequest},
		{KindEventNotFound, http.StatusNotFound},
		{KindSlotNotFound, http.StatusNotFound},
		{KindBookingNotFound, http.StatusNotFound},
		{KindSlotUnavailable, http.StatusConflict},
		{KindHoldInvalid, http.StatusConflict},
		{KindCapacityExceeded, http.StatusConflict},
		{KindTransientStorage, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.kind), string(tc.kind))
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: bookings.booking_ref")))
	assert.False(t, IsUniqueViolation(errors.New("syntax error")))
	assert.False(t, IsUniqueViolation(nil))
}
