package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type DashboardController struct {
	Hub      *hub.Hub
	upgrader websocket.Upgrader
}

// NewDashboardController accepts websocket upgrades from allowedOrigin, or
// from anywhere when it is empty or "*".
func NewDashboardController(h *hub.Hub, allowedOrigin string) *DashboardController {
	return &DashboardController{
		Hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Stream -> websocket feed of reservation, table and customer events
func (dc *DashboardController) Stream(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		role = models.RoleStaff
	}

	ws, err := dc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Warnf("Websocket upgrade failed: %v", err)
		return
	}
	utils.InfoLogger.Infof("Dashboard client connected (role=%s)", role)
	dc.Hub.Serve(ws, role)
	utils.InfoLogger.Infof("Dashboard client disconnected (role=%s)", role)
}
