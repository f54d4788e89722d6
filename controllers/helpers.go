package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondAppError(c, apperrors.Invalid("invalid request body: %v", err))
		return false
	}
	return true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	return parseUint(c, name, c.Param(name))
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	return parseUint(c, name, c.Query(name))
}

func parseUint(c *gin.Context, name, raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		utils.RespondAppError(c, apperrors.Invalid("%s must be a positive integer", name))
		return 0, false
	}
	return uint(v), true
}

// dateQuery reads a YYYY-MM-DD query value, falling back to def when absent.
func dateQuery(c *gin.Context, name string, def time.Time, loc *time.Location) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	d, err := utils.ParseDate(raw, loc)
	if err != nil {
		utils.RespondAppError(c, apperrors.Invalid("%v", err))
		return time.Time{}, false
	}
	return d, true
}

// dateTimeQuery joins the date and time query values into one instant.
func dateTimeQuery(c *gin.Context, loc *time.Location) (time.Time, bool) {
	date, clock := c.Query("date"), c.Query("time")
	if date == "" || clock == "" {
		utils.RespondAppError(c, apperrors.Invalid("date and time are required, e.g. ?date=2030-01-08&time=19:00"))
		return time.Time{}, false
	}
	at, err := utils.CombineDateClock(date, clock, loc)
	if err != nil {
		utils.RespondAppError(c, apperrors.Invalid("%v", err))
		return time.Time{}, false
	}
	return at, true
}

func boolQuery(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}
