package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type AdminController struct {
	Auth    *services.AuthService
	Queries *services.OrderQueryService
	Now     func() time.Time
}

func NewAdminController(auth *services.AuthService, queries *services.OrderQueryService) *AdminController {
	return &AdminController{Auth: auth, Queries: queries, Now: time.Now}
}

// Login -> JWT scoped to the admin's restaurant
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	result, err := ac.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", result)
}

// GetDashboardStats -> counts per status plus today's orders and revenue
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}

	now := time.Now()
	if ac.Now != nil {
		now = ac.Now()
	}

	stats, err := ac.Queries.Stats(c.Request.Context(), scope, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
