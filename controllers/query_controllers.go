package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type QueryController struct {
	Service  *services.QueryService
	Location *time.Location
}

func NewQueryController(service *services.QueryService, loc *time.Location) *QueryController {
	return &QueryController{Service: service, Location: loc}
}

// Availability -> ?date=&time=, split into available and occupied tables
func (qc *QueryController) Availability(c *gin.Context) {
	at, ok := dateTimeQuery(c, qc.Location)
	if !ok {
		return
	}
	summary, err := qc.Service.AvailabilitySummary(c.Request.Context(), at)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table availability", summary)
}

func (qc *QueryController) DaySummary(c *gin.Context) {
	day, ok := dateQuery(c, "date", qc.Service.Today(), qc.Location)
	if !ok {
		return
	}
	summary, err := qc.Service.DaySummary(c.Request.Context(), day)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations for the day", summary)
}

func (qc *QueryController) CustomerHistory(c *gin.Context) {
	id, ok := uintQuery(c, "customer_id")
	if !ok {
		return
	}
	history, err := qc.Service.CustomerHistory(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer history", history)
}

func (qc *QueryController) HourlyOccupancy(c *gin.Context) {
	day, ok := dateQuery(c, "date", qc.Service.Today(), qc.Location)
	if !ok {
		return
	}
	occupancy, err := qc.Service.HourlyOccupancy(c.Request.Context(), day)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Occupancy by hour", occupancy)
}

// PopularTables -> ?days=N, 30 by default
func (qc *QueryController) PopularTables(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondAppError(c, apperrors.Invalid("days must be a positive integer"))
			return
		}
		days = n
	}
	popular, err := qc.Service.PopularTables(c.Request.Context(), days)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Most popular tables", popular)
}
