package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NotFound("x"), http.StatusNotFound},
		{apperrors.New(apperrors.KindInvalidTiming, "x"), http.StatusBadRequest},
		{apperrors.New(apperrors.KindClosedDay, "x"), http.StatusBadRequest},
		{apperrors.New(apperrors.KindCapacityExceeded, "x"), http.StatusBadRequest},
		{apperrors.New(apperrors.KindTerminalStateViolation, "x"), http.StatusBadRequest},
		{apperrors.New(apperrors.KindSlotConflict, "x"), http.StatusConflict},
		{apperrors.New(apperrors.KindDuplicateKey, "x"), http.StatusConflict},
		{apperrors.New(apperrors.KindHasActiveReservations, "x"), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestRespondAppErrorCarriesKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	RespondAppError(c, apperrors.New(apperrors.KindSlotConflict, "table 5 is already booked"))

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "slot_conflict", resp.Error)
	assert.Equal(t, "table 5 is already booked", resp.Message)
}
