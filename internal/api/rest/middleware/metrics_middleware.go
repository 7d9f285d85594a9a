package middleware

import (
	"time"

	"github.com/Dhoini/Customer-microservice/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware создает middleware для сбора HTTP метрик
func MetricsMiddleware(m metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		// FullPath дает шаблон маршрута (/customers/:id), а не конкретный URL,
		// чтобы не раздувать кардинальность метрик
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(startTime))
	}
}
