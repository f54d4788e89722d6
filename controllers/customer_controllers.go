package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type CustomerController struct {
	Service *services.CustomerService
}

func NewCustomerController(service *services.CustomerService) *CustomerController {
	return &CustomerController{Service: service}
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required"`
		Surname string  `json:"surname" binding:"required"`
		Email   string  `json:"email" binding:"required,email"`
		Phone   string  `json:"phone" binding:"required"`
		Address *string `json:"address"`
		Active  *bool   `json:"active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	customer, err := cc.Service.Create(c.Request.Context(), services.CreateCustomerInput{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  req.Active,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Service.List(c.Request.Context(), boolQuery(c, "active"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// SearchCustomers -> active customers whose name or surname contains ?name=
func (cc *CustomerController) SearchCustomers(c *gin.Context) {
	customers, err := cc.Service.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Search results", customers)
}

func (cc *CustomerController) GetCustomerByEmail(c *gin.Context) {
	customer, err := cc.Service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer details", customer)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	customer, err := cc.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer details", customer)
}

func (cc *CustomerController) GetCustomerHistory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	history, err := cc.Service.History(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation history", history)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name    *string `json:"name" binding:"omitempty,min=1"`
		Surname *string `json:"surname" binding:"omitempty,min=1"`
		Email   *string `json:"email" binding:"omitempty,email"`
		Phone   *string `json:"phone" binding:"omitempty,min=1"`
		Address *string `json:"address"`
		Active  *bool   `json:"active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	customer, err := cc.Service.Update(c.Request.Context(), id, services.UpdateCustomerInput{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  req.Active,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := cc.Service.Delete(c.Request.Context(), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", nil)
}
