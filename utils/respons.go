package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/apperrors"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Error:   string(apperrors.KindOf(err)),
	})
}

// RespondAppError picks the status code from the error kind. Errors without a
// kind are logged and reported as 500.
func RespondAppError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		ErrorLogger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
	}
	RespondError(c, code, err)
}

func StatusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindInvalid,
		apperrors.KindInvalidTiming,
		apperrors.KindOutsideBusinessHours,
		apperrors.KindClosedDay,
		apperrors.KindCapacityExceeded,
		apperrors.KindAlreadyCancelled,
		apperrors.KindTerminalStateViolation:
		return http.StatusBadRequest
	case apperrors.KindSlotConflict,
		apperrors.KindDuplicateKey,
		apperrors.KindHasActiveReservations:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
