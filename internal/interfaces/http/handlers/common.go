// Package handlers implements the HTTP API endpoints. Handlers depend on
// narrow service interfaces so tests can inject fakes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/ProcureLens/pkg/errors"
)

// ErrorResponse is the error body every endpoint returns on failure.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an application error to its HTTP status. Internal errors
// are masked; everything else surfaces its message and code.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code.String(), Message: message})
}
