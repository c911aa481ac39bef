// ABOUTME: JSON response envelope and error-to-status mapping for HTTP handlers.
// ABOUTME: Every API reply is {code, message, data}.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/move/internal/charts"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/models"
	"github.com/harperreed/move/internal/summary"
)

// errUnknownChart is returned for a chart id the dashboard does not define.
var errUnknownChart = errors.New("unknown chart")

type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Ok writes a 200 envelope carrying data.
func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Error writes an error envelope with the given status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
	})
}

// Fail maps err to a status and writes the error envelope.
func Fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidConfig),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, export.ErrNoRows),
		errors.Is(err, summary.ErrEmptyTable):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnknownProfile),
		errors.Is(err, models.ErrUnknownSession),
		errors.Is(err, errUnknownChart),
		errors.Is(err, charts.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
