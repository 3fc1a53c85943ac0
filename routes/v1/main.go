package v1

import (
	"backoffice/adminsite"
	"backoffice/handlers/auth"
	"backoffice/handlers/menu"
	"backoffice/handlers/ops"
	"backoffice/handlers/persons"
	"backoffice/middleware"
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine, navigator adminsite.Navigator, collector *services.HealthCollector, routes *adminsite.RouteTable) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	// Access logging runs after the handler so it sees the final state
	v1.Use(middleware.AccessLogMiddleware(routes))

	RegisterPingRoutes(v1)
	RegisterSwaggerRoutes(v1)
	auth.RegisterRoutes(v1)
	menu.RegisterRoutes(v1, navigator)
	persons.RegisterRoutes(v1)
	ops.RegisterRoutes(v1, collector)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
