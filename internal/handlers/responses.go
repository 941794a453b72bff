package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// respondError maps a service error to its status code. Internal failures
// are logged with their cause and answered with the generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, message string) {
	status, code := apperrors.Classify(err)
	switch {
	case status == http.StatusInternalServerError:
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(status, errorResponse{Code: code, Error: message})
	case status >= http.StatusInternalServerError:
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(status, errorResponse{Code: code, Error: err.Error()})
	default:
		logger.Warn(message, slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(status, errorResponse{Code: code, Error: err.Error()})
	}
}

// respondBindError answers a request whose body or query could not be bound.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, errorResponse{Code: "validation_error", Error: "Invalid " + what + ": " + err.Error()})
}

// requireUser returns the authenticated caller, answering 401 when there is none.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, errorResponse{Code: "unauthorized", Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
