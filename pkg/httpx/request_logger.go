package httpx

import (
	"time"

	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/gin-gonic/gin"
)

// RequestLogger - middleware для журнала HTTP-запросов киоска.
// request_id и trace/span логгер берёт из контекста сам.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// служебные и опрашиваемые киоском пути не логируем
		switch c.FullPath() {
		case "/metrics", "/ping", "/busy", "/toasts":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if location := c.Writer.Header().Get("Location"); location != "" {
			log.Infof(c.Request.Context(), "request method=%s path=%s status=%d location=%s duration=%s",
				c.Request.Method, path, c.Writer.Status(), location, time.Since(start))
			return
		}

		log.Infof(
			c.Request.Context(),
			"request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
