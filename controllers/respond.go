package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarmaan6204/nutri-tracker/services"
)

// respondError maps service sentinel errors onto the uniform
// {success:false, message, error?} envelope. The error detail is only
// attached outside production.
func respondError(c *gin.Context, production bool, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrDuplicateUsername):
		status, message = http.StatusBadRequest, "Username already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, services.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, services.ErrMealNotFound):
		status, message = http.StatusNotFound, "Meal not found"
	case errors.Is(err, services.ErrPredictionUnavailable):
		status, message = http.StatusInternalServerError, err.Error()
	}

	body := gin.H{"success": false, "message": message}
	if status == http.StatusInternalServerError && !production {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}
