package menu

import (
	"backoffice/adminsite"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the navigation endpoint and the menu editing
// surface. The navigator is the seam chosen at startup: the scope-aware
// implementation in production, any other in tests.
func RegisterRoutes(r *gin.RouterGroup, navigator adminsite.Navigator) {

	r.GET("/navigation", GetNavigation(navigator))

	m := r.Group("/menu")
	{
		m.GET("/scopes", GetAllScopes)
		m.POST("/scopes", CreateScope)
		m.PUT("/scopes/:scope_id", UpdateScope)
		m.DELETE("/scopes/:scope_id", DeleteScope)
		m.GET("/scopes/:scope_id/configs", GetConfigsForScope)

		m.POST("/configs", CreateConfig)
		m.POST("/configs/:config_id/activate", ActivateConfig)
		m.DELETE("/configs/:config_id", DeleteConfig)

		m.POST("/items", CreateItem)
		m.PUT("/items/:item_id", UpdateItem)
		m.DELETE("/items/:item_id", DeleteItem)
	}
}
