package menu

import (
	"context"
	"net/http"

	"backoffice/database"
	"backoffice/models"
	"backoffice/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetConfigsForScope lists the configurations of a scope, active first
// @Summary Get menu configurations for a scope
// @Description List all menu configurations of a scope with their items
// @Tags Menu
// @Produce json
// @Param scope_id path string true "Scope ID"
// @Success 200 {array} models.MenuConfig
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /menu/scopes/{scope_id}/configs [get]
// @Security Bearer
func GetConfigsForScope(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    scopeID := c.Param("scope_id")
    if !recordExists(c, &models.MenuScope{}, scopeID, ErrScopeNotFound) {
        return
    }

    var configs []models.MenuConfig
    err := withTimeout(func(ctx context.Context) error {
        return database.DB.WithContext(ctx).
            Where("scope_id = ?", scopeID).
            Order("is_active DESC").Order("updated_at DESC").
            Preload("Items", func(db *gorm.DB) *gorm.DB {
                return db.Order("\"order\" ASC").Order("id ASC")
            }).
            Find(&configs).Error
    })

    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFetchingConfigs)
        return
    }

    c.JSON(http.StatusOK, configs)
}

// CreateConfig creates a configuration under a scope
// @Summary Create a menu configuration
// @Description Create a menu configuration snapshot; activating it deactivates its siblings
// @Tags Menu
// @Accept json
// @Produce json
// @Param config body CreateConfigRequest true "Configuration to create"
// @Success 201 {object} models.MenuConfig
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /menu/configs [post]
// @Security Bearer
func CreateConfig(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    var req CreateConfigRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    if !recordExists(c, &models.MenuScope{}, req.ScopeID, ErrScopeNotFound) {
        return
    }

    config := models.MenuConfig{ScopeID: req.ScopeID}
    err := withTimeout(func(ctx context.Context) error {
        return database.DB.WithContext(ctx).Create(&config).Error
    })
    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFailedCreateConfig)
        return
    }

    if req.IsActive {
        if err := config.Activate(database.DB); err != nil {
            response.Error(c, http.StatusInternalServerError, ErrFailedActivate)
            return
        }
    }

    c.JSON(http.StatusCreated, config)
}

// ActivateConfig makes a configuration the one in effect for its scope
// @Summary Activate a menu configuration
// @Description Atomically activate a configuration and deactivate its siblings
// @Tags Menu
// @Produce json
// @Param config_id path string true "Configuration ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/configs/{config_id}/activate [post]
// @Security Bearer
func ActivateConfig(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    configID := c.Param("config_id")
    var config models.MenuConfig
    if err := database.DB.First(&config, "id = ?", configID).Error; err != nil {
        response.Error(c, http.StatusBadRequest, ErrConfigNotFound)
        return
    }

    if err := config.Activate(database.DB); err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFailedActivate)
        return
    }

    c.Status(http.StatusNoContent)
}

// DeleteConfig deletes a configuration and its items
// @Summary Delete a menu configuration
// @Description Delete a menu configuration and all of its items
// @Tags Menu
// @Produce json
// @Param config_id path string true "Configuration ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/configs/{config_id} [delete]
// @Security Bearer
func DeleteConfig(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    configID := c.Param("config_id")
    var config models.MenuConfig
    if err := database.DB.First(&config, "id = ?", configID).Error; err != nil {
        response.Error(c, http.StatusBadRequest, ErrConfigNotFound)
        return
    }

    err := database.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("config_id = ?", config.ID).Delete(&models.MenuItem{}).Error; err != nil {
            return err
        }
        return tx.Delete(&config).Error
    })

    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFailedDeleteConfig)
        return
    }

    c.Status(http.StatusNoContent)
}
