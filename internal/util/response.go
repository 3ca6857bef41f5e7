package util

import (
	"net/http"

	"bashaway_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope for every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse carries one page of documents plus total count metadata.
type PageResponse struct {
	Docs      interface{} `json:"docs"`
	TotalDocs int64       `json:"totalDocs"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, maskedErrorMessage)
}

// HandleError translates service results into responses. Domain violations
// arrive as *APIError values; anything else is an infrastructure failure that
// gets logged with request context and masked.
func HandleError(c *gin.Context, err error) {
	if apiErr, ok := AsAPIError(err); ok {
		Error(c, apiErr.Status, apiErr.Message)
		return
	}

	if apiErr := TranslateDuplicateKey(err); apiErr != nil {
		Error(c, apiErr.Status, apiErr.Message)
		return
	}

	logger.Log.Error("Unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("client_ip", c.ClientIP()),
	)
	InternalServerError(c)
}
