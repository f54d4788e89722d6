package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type ReservationController struct {
	Service  *services.ReservationService
	Queries  *services.QueryService
	Location *time.Location
}

func NewReservationController(service *services.ReservationService, queries *services.QueryService, loc *time.Location) *ReservationController {
	return &ReservationController{Service: service, Queries: queries, Location: loc}
}

func (rc *ReservationController) parseDateTime(c *gin.Context, raw string) (time.Time, bool) {
	at, err := utils.ParseDateTime(raw, rc.Location)
	if err != nil {
		utils.RespondAppError(c, apperrors.Invalid("%v", err))
		return time.Time{}, false
	}
	return at, true
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		DateTime    string  `json:"date_time" binding:"required"`
		PartySize   int     `json:"party_size" binding:"required,min=1"`
		TableNumber uint    `json:"table_number" binding:"required,min=1"`
		CustomerID  uint    `json:"customer_id" binding:"required,min=1"`
		Status      string  `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
		Notes       *string `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	at, ok := rc.parseDateTime(c, req.DateTime)
	if !ok {
		return
	}

	reservation, err := rc.Service.Create(c.Request.Context(), services.CreateReservationInput{
		DateTime:    at,
		PartySize:   req.PartySize,
		TableNumber: req.TableNumber,
		CustomerID:  req.CustomerID,
		Status:      models.ReservationStatus(req.Status),
		Notes:       req.Notes,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetAllReservations -> newest first; optional ?from=&to= (dates), ?table=,
// ?customer_id= and ?status=
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var filter repository.ReservationFilter
	if raw := c.Query("from"); raw != "" {
		from, ok := dateQuery(c, "from", time.Time{}, rc.Location)
		if !ok {
			return
		}
		filter.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, ok := dateQuery(c, "to", time.Time{}, rc.Location)
		if !ok {
			return
		}
		filter.To = to.AddDate(0, 0, 1)
	}
	if c.Query("table") != "" {
		table, ok := uintQuery(c, "table")
		if !ok {
			return
		}
		filter.TableNumber = table
	}
	if c.Query("customer_id") != "" {
		id, ok := uintQuery(c, "customer_id")
		if !ok {
			return
		}
		filter.CustomerID = id
	}
	for _, raw := range c.QueryArray("status") {
		st := models.ReservationStatus(raw)
		if !st.Valid() {
			utils.RespondAppError(c, apperrors.Invalid("unknown reservation status %q", raw))
			return
		}
		filter.Statuses = append(filter.Statuses, st)
	}

	reservations, err := rc.Service.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationsForDay -> ?date=YYYY-MM-DD, today when omitted
func (rc *ReservationController) GetReservationsForDay(c *gin.Context) {
	day, ok := dateQuery(c, "date", rc.Queries.Today(), rc.Location)
	if !ok {
		return
	}
	reservations, err := rc.Queries.ReservationsForDay(c.Request.Context(), day)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations for the day", reservations)
}

// CheckAvailability -> ?date=YYYY-MM-DD&time=HH:MM
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	at, ok := dateTimeQuery(c, rc.Location)
	if !ok {
		return
	}
	slots, err := rc.Queries.Availability(c.Request.Context(), at)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table availability", slots)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation details", reservation)
}

// UpdateReservation -> partial update. A status of "cancelled" cancels and
// ignores every other field.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		DateTime    *string `json:"date_time"`
		PartySize   *int    `json:"party_size" binding:"omitempty,min=1"`
		Status      *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
		Notes       *string `json:"notes"`
		TableNumber *uint   `json:"table_number" binding:"omitempty,min=1"`
		CustomerID  *uint   `json:"customer_id" binding:"omitempty,min=1"`
	}
	if !bindJSON(c, &req) {
		return
	}

	in := services.UpdateReservationInput{
		PartySize:   req.PartySize,
		Notes:       req.Notes,
		TableNumber: req.TableNumber,
		CustomerID:  req.CustomerID,
	}
	if req.Status != nil {
		st := models.ReservationStatus(*req.Status)
		in.Status = &st
	}
	if req.DateTime != nil && !in.IsCancel() {
		at, ok := rc.parseDateTime(c, *req.DateTime)
		if !ok {
			return
		}
		in.DateTime = &at
	}

	reservation, err := rc.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Service.Cancel(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}

// DeleteReservation -> administrative hard delete
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Service.Delete(c.Request.Context(), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", nil)
}
