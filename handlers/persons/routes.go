package persons

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the profile routes
func RegisterRoutes(r *gin.RouterGroup) {
	personsGroup := r.Group("/persons")
	{
		personsGroup.GET("/", GetAllPersons)
		personsGroup.GET("/me", GetMyProfile)
		personsGroup.PUT("/me", UpdateMyProfile)
		personsGroup.GET("/:person_id", GetPersonByID)
	}
}
