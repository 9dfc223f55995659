package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck 提供负载均衡与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	now := time.Now().UTC()

	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"message":   "database handle unavailable",
			"timestamp": now,
			"database":  "down",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"message":   "database unreachable",
			"timestamp": now,
			"database":  "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "BioNutrex API is running",
		"timestamp": now,
		"database":  "up",
	})
}

// NotFound 为未匹配的 API 路由返回 JSON 404。
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Route not found")
}
