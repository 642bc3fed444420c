package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request: method, path with query, client, status, latency
// and any errors handlers attached to the context
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		line := "[%s] %s %s %d %v %dB"
		args := []interface{}{c.Request.Method, path, c.ClientIP(), status, time.Since(start), c.Writer.Size()}
		if len(c.Errors) > 0 {
			line += " errors=%s"
			args = append(args, c.Errors.String())
		}
		log.Printf(line, args...)
	}
}
