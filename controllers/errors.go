package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// respondServiceError maps service errors onto status codes. Anything it does
// not recognise is logged in full and answered with an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrModifierOptionNotFound),
		errors.Is(err, services.ErrInvalidStatus):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		utils.ErrorLogger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		utils.RespondErrorMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

func bindError(c *gin.Context, err error) {
	utils.RespondErrorMessage(c, http.StatusBadRequest, "invalid request body: "+err.Error())
}
