package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	companies "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	analytics "github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

// ErrorResponse is the structured error body every failure maps to.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// Error codes surfaced to clients.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeTimeout        = "TIMEOUT"
	CodeInternalError  = "INTERNAL_ERROR"
)

// RespondError translates a service error into the matching status code
// and structured body. Unrecognized errors become a generic 500 so store
// internals never leak a stack of wrapped causes to clients unlabelled.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, companies.ErrInvalidArgument), errors.Is(err, analytics.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{ErrorCode: CodeInvalidRequest, Message: err.Error()})
	case errors.Is(err, companies.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{ErrorCode: CodeNotFound, Message: err.Error()})
	case errors.Is(err, analytics.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{ErrorCode: CodeTimeout, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{ErrorCode: CodeInternalError, Message: err.Error()})
	}
}
