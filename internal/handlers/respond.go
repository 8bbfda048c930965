// Package handlers exposes the services over HTTP. Every response is the
// same envelope: success flag, human-readable message and optional data.
// Error kinds map onto status codes in exactly one place (fail), so the
// services never see HTTP.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamenight/backend/internal/apperr"
)

// Envelope is the boundary response convention.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// fail maps an error kind onto a status code and writes the envelope. The
// taxonomy errors surface verbatim; anything unrecognized is logged with
// full detail and surfaced as a generic internal error.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrAuthentication):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperr.ErrAuthorization):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	default:
		slog.Error("Internal error",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
		)
	}

	c.JSON(status, Envelope{Success: false, Message: message})
}
