package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasteline/restaurant-app/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := utils.InfoLogger
		if status >= 500 {
			entry = utils.ErrorLogger
		}
		entry.Printf("%s %s -> %d (%s) from %s",
			c.Request.Method, path, status, latency, c.ClientIP())
	}
}
