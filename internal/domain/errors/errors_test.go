package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	e := NewAppError(http.StatusConflict, "slot taken", ErrSlotUnavailable)
	require.Equal(t, "slot unavailable", e.Error())

	e = NewAppError(http.StatusConflict, "slot taken", nil)
	require.Equal(t, "slot taken", e.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	e := Conflict("already done", ErrAlreadyCompleted)
	require.True(t, errors.Is(e, ErrAlreadyCompleted))
}

func TestConstructors(t *testing.T) {
	require.Equal(t, http.StatusNotFound, NotFound("x").Code)
	require.Equal(t, http.StatusBadRequest, BadRequest("x").Code)
	require.Equal(t, http.StatusConflict, Conflict("x", ErrSlotUnavailable).Code)
	require.Equal(t, http.StatusUnprocessableEntity, Unprocessable("x", ErrCannotCompleteUnpaidBooking).Code)
	require.Equal(t, http.StatusUnauthorized, Unauthorized("x").Code)
	require.Equal(t, http.StatusForbidden, Forbidden("x").Code)
	require.Equal(t, http.StatusInternalServerError, InternalError(errors.New("boom")).Code)
}
