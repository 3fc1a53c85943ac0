package menu

import (
	"net/http"

	"backoffice/adminsite"
	"backoffice/middleware"

	"github.com/gin-gonic/gin"
)

// GetNavigation returns the navigation list for the authenticated user
// @Summary Get the navigation list
// @Description Returns the admin navigation sections for the current user: the scope-configured menu when one applies, the default registry list otherwise
// @Tags Menu
// @Produce json
// @Param app query string false "Restrict to a single app label"
// @Success 200 {array} adminsite.AppEntry
// @Failure 401 {object} map[string]string
// @Router /navigation [get]
// @Security Bearer
func GetNavigation(navigator adminsite.Navigator) gin.HandlerFunc {
    return func(c *gin.Context) {
        user, err := middleware.GetUserFromRequest(c)
        if err != nil {
            return
        }

        appLabel := c.Query("app")
        c.JSON(http.StatusOK, navigator.AppList(user, appLabel))
    }
}
