package response

import (
	"github.com/gin-gonic/gin"
)

type ApiEnvelope struct {
	Ok    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Error any  `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Partial is used when the request was processed but the payload itself reports failure.
func Partial(c *gin.Context, status int, data any, errorCode string, message string) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: data,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
		},
	})
}
