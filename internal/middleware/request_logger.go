package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"sourcexpet_admin_v1/pkg/logger"
)

// ==================== 请求日志中间件 ====================

// RequestLogger 请求日志中间件
// 记录每个请求的方法、路径、状态码和耗时
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.L.Infow("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}
