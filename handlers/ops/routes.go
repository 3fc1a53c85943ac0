package ops

import (
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the operational dashboard routes
func RegisterRoutes(r *gin.RouterGroup, collector *services.HealthCollector) {
	opsGroup := r.Group("/ops")
	{
		opsGroup.GET("/health", GetSystemHealth(collector))
		opsGroup.GET("/health/config", GetHealthConfig)
		opsGroup.PUT("/health/config", UpdateHealthConfig)
		opsGroup.GET("/access/summary", GetAccessSummary)
		opsGroup.GET("/access/events", GetAccessEvents)
		opsGroup.GET("/access/settings", GetAccessSettings)
		opsGroup.PUT("/access/settings", UpdateAccessSettings)
		opsGroup.POST("/access/prune", PruneAccessEvents)
		opsGroup.GET("/access/ws", AccessFeedWebSocket)
	}
}
