package ops

import (
	"context"
	"net/http"
	"time"

	"backoffice/database"
	"backoffice/middleware"
	"backoffice/models"
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

const defaultQueryTimeout = 5 * time.Second

func withTimeout(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()
	return fn(ctx)
}

func requireSuperuser(c *gin.Context) bool {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return false
	}
	if !user.IsSuperuser {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrUserNotAllowed})
		return false
	}
	return true
}

// GetAccessSettings returns the access logging settings singleton.
//
// @Summary Get access settings
// @Description Get the access logging settings, superuser only
// @Tags Ops
// @Accept json
// @Produce json
// @Success 200 {object} models.AccessSettings
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/access/settings [get]
// @Security Bearer
func GetAccessSettings(c *gin.Context) {
	if !requireSuperuser(c) {
		return
	}

	settings, err := services.GetAccessSettings(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingSettings})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateAccessSettings replaces the access logging settings and refreshes
// the in-process cache so the middleware picks the change up immediately.
//
// @Summary Update access settings
// @Description Update the access logging settings, superuser only
// @Tags Ops
// @Accept json
// @Produce json
// @Param settings body AccessSettingsRequest true "New settings"
// @Success 200 {object} models.AccessSettings
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/access/settings [put]
// @Security Bearer
func UpdateAccessSettings(c *gin.Context) {
	if !requireSuperuser(c) {
		return
	}

	var req AccessSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := services.GetAccessSettings(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingSettings})
		return
	}

	settings.OnlineWindowMinutes = req.OnlineWindowMinutes
	settings.AutoRefreshSeconds = req.AutoRefreshSeconds
	settings.LogAnonymous = *req.LogAnonymous
	settings.LogNonGetRequests = *req.LogNonGetRequests
	settings.IgnorePaths = req.IgnorePaths
	settings.IgnoredUserAgents = req.IgnoredUserAgents
	settings.SamplingRatio = req.SamplingRatio
	settings.RetentionDays = req.RetentionDays

	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Save(settings).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrSavingSettings})
		return
	}

	services.RefreshAccessSettings(settings)
	c.JSON(http.StatusOK, settings)
}

// GetHealthConfig returns the system health thresholds singleton.
//
// @Summary Get health thresholds
// @Description Get the system health thresholds, superuser only
// @Tags Ops
// @Accept json
// @Produce json
// @Success 200 {object} models.SystemHealthConfig
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/health/config [get]
// @Security Bearer
func GetHealthConfig(c *gin.Context) {
	if !requireSuperuser(c) {
		return
	}

	var config models.SystemHealthConfig
	err := withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).First(&config).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingHealthConfig})
		return
	}

	c.JSON(http.StatusOK, config)
}

// UpdateHealthConfig replaces the system health thresholds.
//
// @Summary Update health thresholds
// @Description Update the system health thresholds, superuser only
// @Tags Ops
// @Accept json
// @Produce json
// @Param config body HealthConfigRequest true "New thresholds"
// @Success 200 {object} models.SystemHealthConfig
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /ops/health/config [put]
// @Security Bearer
func UpdateHealthConfig(c *gin.Context) {
	if !requireSuperuser(c) {
		return
	}

	var req HealthConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var config models.SystemHealthConfig
	err := withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).First(&config).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingHealthConfig})
		return
	}

	config.WarnCPULoadPerCore = req.WarnCPULoadPerCore
	config.CritCPULoadPerCore = req.CritCPULoadPerCore
	config.WarnMemUsedPct = req.WarnMemUsedPct
	config.CritMemUsedPct = req.CritMemUsedPct
	config.WarnDiskUsedPct = req.WarnDiskUsedPct
	config.CritDiskUsedPct = req.CritDiskUsedPct
	config.CacheSeconds = req.CacheSeconds

	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Save(&config).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrSavingHealthConfig})
		return
	}

	c.JSON(http.StatusOK, config)
}
