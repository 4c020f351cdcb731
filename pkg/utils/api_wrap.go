package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var providerErr *ProviderError

	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrTripNotFound):
		RespondError(c, http.StatusNotFound, "Trip not found")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Triage session not found")
	case errors.Is(err, ErrAccountExists):
		RespondError(c, http.StatusConflict, "Username is already taken")
	case errors.Is(err, ErrUnsupportedMedia):
		RespondError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, ErrTooManyRequests):
		RespondError(c, http.StatusTooManyRequests, "Too many requests, slow down")
	case errors.Is(err, ErrServiceUnavailable):
		log.WithField("trace_id", c.GetString("trace_id")).Warnf("Service unavailable: %v", err)
		RespondError(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &providerErr):
		log.WithField("trace_id", c.GetString("trace_id")).Errorf("Provider error: %v", err)
		RespondError(c, http.StatusBadGateway, providerErr.Error())
	case errors.Is(err, ErrDatabaseError):
		log.WithField("trace_id", c.GetString("trace_id")).Errorf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.WithField("trace_id", c.GetString("trace_id")).Errorf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
