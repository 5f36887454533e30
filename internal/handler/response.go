package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// Response is the envelope every endpoint returns. Code carries the
// application error code on failures so clients can tell a referential
// rejection from a plain bad request sharing the same HTTP status.
type Response struct {
	Status  string              `json:"status"`
	Code    apperrors.ErrorCode `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
}

// ListResponse wraps paginated collections.
type ListResponse struct {
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
	Items interface{} `json:"items"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Status: "success", Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Status: "success", Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Status: "success", Message: message})
}

// respondError maps application errors onto HTTP statuses. Anything that is
// not an AppError is treated as an internal failure without leaking details.
func respondError(c *gin.Context, err error) {
	var app *apperrors.AppError
	if errors.As(err, &app) {
		c.JSON(app.StatusCode(), Response{Status: "error", Code: app.Code, Message: app.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Status:  "error",
		Code:    apperrors.ErrInternal,
		Message: "internal server error",
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Status: "error", Code: apperrors.ErrBadRequest, Message: message})
}
