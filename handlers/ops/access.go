package ops

import (
	"net/http"
	"strconv"
	"time"

	"backoffice/middleware"
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

func requireDashboardPerm(c *gin.Context) bool {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return false
	}
	if !user.HasPerm("syshealth.view_access_dashboard") {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrNoPermissionDashboard})
		return false
	}
	return true
}

// GetAccessSummary returns activity counters for the online window.
//
// @Summary Access summary
// @Description Get online users and event counters for the dashboard
// @Tags Ops
// @Accept json
// @Produce json
// @Success 200 {object} services.AccessSummary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/access/summary [get]
// @Security Bearer
func GetAccessSummary(c *gin.Context) {
	if !requireDashboardPerm(c) {
		return
	}

	summary, err := services.GetAccessSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingSummary})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAccessEvents lists the most recent access events.
//
// @Summary Recent access events
// @Description Get recent access events, newest first
// @Tags Ops
// @Accept json
// @Produce json
// @Param limit query int false "Max events to return, capped at 500"
// @Success 200 {array} models.AccessEvent
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/access/events [get]
// @Security Bearer
func GetAccessEvents(c *gin.Context) {
	if !requireDashboardPerm(c) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	events, err := services.RecentAccessEvents(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingEvents})
		return
	}

	c.JSON(http.StatusOK, events)
}

// PruneAccessEvents deletes events older than the retention window.
//
// @Summary Prune access events
// @Description Delete access events past retention, superuser only. Pass dry_run=1 to only count
// @Tags Ops
// @Accept json
// @Produce json
// @Param dry_run query string false "Set to 1 to count without deleting"
// @Success 200 {object} PruneResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/access/prune [post]
// @Security Bearer
func PruneAccessEvents(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !user.IsSuperuser {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrUserNotAllowed})
		return
	}

	dryRun := c.Query("dry_run") == "1"
	deleted, cutoff, err := services.PruneAccessEvents(dryRun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrPruneFailed})
		return
	}

	c.JSON(http.StatusOK, PruneResponse{
		DryRun:  dryRun,
		Deleted: deleted,
		Cutoff:  cutoff.Format(time.RFC3339),
	})
}
