package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API reply is wrapped in.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponseContent replies 200 with a single content string.
func SuccessResponseContent(c *gin.Context, content string) {
	c.JSON(http.StatusOK, NewResponse(true, http.StatusOK, gin.H{"content": content}))
}

// SuccessResponseList replies 200 with a list of items.
func SuccessResponseList[T []any | map[string]any](c *gin.Context, list T) {
	c.JSON(http.StatusOK, NewResponse(true, http.StatusOK, gin.H{"list": list}))
}

// SuccessResponse replies 200 with arbitrary extras.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, NewResponse(true, http.StatusOK, extras))
}

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, NewResponse(false, code, gin.H{"message": message}))
}

// Fail replies with err's status and aborts the handler chain.
func Fail(c *gin.Context, err Error) {
	c.AbortWithStatusJSON(err.Code, NewResponse(false, err.Code, gin.H{"message": err.Extras}))
}
