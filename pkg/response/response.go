package response

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Message is the legacy `{"message": ...}` body used for errors and delete
// confirmations. The clients predate this server and expect this exact shape.
type Message struct {
	Message string `json:"message"`
}

// OK writes a 200 message body.
func OK(c *gin.Context, message string) {
	c.JSON(200, Message{Message: message})
}

// Error writes an error response with the given status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Message{Message: message})
}

// ErrorWithLog writes an error response and logs the underlying error.
func ErrorWithLog(logger *slog.Logger, c *gin.Context, status int, message string, err error) {
	if logger != nil && err != nil {
		logger.ErrorContext(c.Request.Context(), message,
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}
	Error(c, status, message)
}
