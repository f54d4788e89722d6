package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(service *services.TableService) *TableController {
	return &TableController{Service: service}
}

// CreateTable -> adds a table to the floor plan
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   uint   `json:"number" binding:"required,min=1"`
		Capacity int    `json:"capacity" binding:"required,min=1"`
		Location string `json:"location" binding:"required"`
		Active   *bool  `json:"active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	table, err := tc.Service.Create(c.Request.Context(), services.CreateTableInput{
		Number:   req.Number,
		Capacity: req.Capacity,
		Location: req.Location,
		Active:   req.Active,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> every table, or only active ones with ?active=true
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Service.List(c.Request.Context(), boolQuery(c, "active"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTablesByCapacity(c *gin.Context) {
	capacity, ok := uintParam(c, "capacity")
	if !ok {
		return
	}
	tables, err := tc.Service.ByCapacity(c.Request.Context(), int(capacity))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables by capacity", tables)
}

func (tc *TableController) GetTable(c *gin.Context) {
	number, ok := uintParam(c, "number")
	if !ok {
		return
	}
	table, err := tc.Service.Get(c.Request.Context(), number)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table details", table)
}

// UpdateTable -> partial update, including renumbering
func (tc *TableController) UpdateTable(c *gin.Context) {
	number, ok := uintParam(c, "number")
	if !ok {
		return
	}
	var req struct {
		Number   *uint   `json:"number" binding:"omitempty,min=1"`
		Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
		Location *string `json:"location" binding:"omitempty,min=1"`
		Active   *bool   `json:"active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	table, err := tc.Service.Update(c.Request.Context(), number, services.UpdateTableInput{
		Number:   req.Number,
		Capacity: req.Capacity,
		Location: req.Location,
		Active:   req.Active,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	number, ok := uintParam(c, "number")
	if !ok {
		return
	}
	if err := tc.Service.Delete(c.Request.Context(), number); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}
