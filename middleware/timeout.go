package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	timeout "github.com/vearne/gin-timeout"
)

// Timeout answers 408 with ErrRequestTimeout once d has passed. The request
// context handed to the handlers is cancelled at the same moment.
func Timeout(d time.Duration) gin.HandlerFunc {
	handler := timeout.Timeout(
		timeout.WithTimeout(d),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg(ErrRequestTimeout),
	)
	return func(c *gin.Context) {
		// the timeout body bypasses gin's renderer, so its content type is set up front
		c.Header("Content-Type", "application/json; charset=utf-8")
		handler(c)
	}
}
