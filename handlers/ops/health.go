package ops

import (
	"net/http"

	"backoffice/middleware"
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

// GetSystemHealth returns the cached system health snapshot.
//
// @Summary System health
// @Description Get the system health snapshot, pass refresh=1 to bypass the cache
// @Tags Ops
// @Accept json
// @Produce json
// @Param refresh query string false "Set to 1 to force a fresh collection"
// @Success 200 {object} services.HealthSnapshot
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/health [get]
// @Security Bearer
func GetSystemHealth(collector *services.HealthCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.GetUserFromRequest(c)
		if err != nil {
			return
		}
		if !user.IsStaff && !user.HasPerm("syshealth.view_systemhealthpanel") {
			c.JSON(http.StatusForbidden, gin.H{"error": ErrNoPermissionHealth})
			return
		}

		forceRefresh := c.Query("refresh") == "1"
		c.JSON(http.StatusOK, collector.Snapshot(forceRefresh))
	}
}
