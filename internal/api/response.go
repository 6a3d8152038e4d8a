package api

import (
	"net/http"

	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// Response is the uniform success envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// PaginatedResponse wraps a listing page with its pagination block.
type PaginatedResponse struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data"`
	Pagination *service.Pagination `json:"pagination"`
}

// Success writes a 200 success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Error writes an error envelope with the given status.
func Error(c *gin.Context, code int, message string) {
	statusCode := http.StatusInternalServerError
	if code >= 400 && code < 600 {
		statusCode = code
	}
	c.JSON(statusCode, ErrorResponse{Success: false, Error: message})
}

// Paginated writes a 200 paginated envelope.
func Paginated(c *gin.Context, data interface{}, pagination *service.Pagination) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}
