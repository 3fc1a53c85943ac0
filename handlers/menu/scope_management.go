package menu

import (
	"context"
	"errors"
	"net/http"
	"time"

	"backoffice/database"
	"backoffice/middleware"
	"backoffice/models"
	"backoffice/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
    // defaultQueryTimeout defines the standard timeout for database operations
    defaultQueryTimeout = 5 * time.Second
)

// withTimeout executes a database function with a timeout context
func withTimeout(operation func(ctx context.Context) error) error {
    ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
    defer cancel()
    return operation(ctx)
}

// requireSuperuser authenticates the request and rejects non-superusers.
// Menus are edited exclusively by superusers.
func requireSuperuser(c *gin.Context) (*models.User, bool) {
    user, err := middleware.GetUserFromRequest(c)
    if err != nil {
        return nil, false
    }
    if !user.IsSuperuser {
        response.Error(c, http.StatusForbidden, ErrNoPermission)
        return nil, false
    }
    return user, true
}

// recordExists reports whether a row with the id exists, writing the error
// response itself otherwise. A failed lookup is a server error, not a miss.
func recordExists(c *gin.Context, model interface{}, id string, notFoundMsg string) bool {
    var count int64
    if err := database.DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
        response.Error(c, http.StatusInternalServerError, ErrLookupFailed)
        return false
    }
    if count == 0 {
        response.Error(c, http.StatusBadRequest, notFoundMsg)
        return false
    }
    return true
}

// GetAllScopes retrieves all menu scopes in priority order
// @Summary Get all menu scopes
// @Description Get all menu scopes with their configurations, superusers only
// @Tags Menu
// @Produce json
// @Success 200 {array} models.MenuScope
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/scopes [get]
// @Security Bearer
func GetAllScopes(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    var scopes []models.MenuScope
    err := withTimeout(func(ctx context.Context) error {
        return models.OrderedScopes(database.DB.WithContext(ctx)).
            Preload("Group").
            Preload("Configs").
            Find(&scopes).Error
    })

    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFetchingScopes)
        return
    }

    c.JSON(http.StatusOK, scopes)
}

// CreateScope creates a new menu scope
// @Summary Create a menu scope
// @Description Create a menu scope targeting a group, or the default scope when group_id is omitted
// @Tags Menu
// @Accept json
// @Produce json
// @Param scope body CreateScopeRequest true "Scope to create"
// @Success 201 {object} models.MenuScope
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /menu/scopes [post]
// @Security Bearer
func CreateScope(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    var req CreateScopeRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    if req.GroupID != nil && !recordExists(c, &models.Group{}, *req.GroupID, ErrGroupNotFound) {
        return
    }

    scope := models.MenuScope{
        Name:     req.Name,
        GroupID:  req.GroupID,
        Priority: req.Priority,
    }

    err := withTimeout(func(ctx context.Context) error {
        return database.DB.WithContext(ctx).Create(&scope).Error
    })

    if err != nil {
        if errors.Is(err, models.ErrDefaultScopeExists) {
            response.Error(c, http.StatusBadRequest, err.Error())
        } else {
            response.Error(c, http.StatusInternalServerError, ErrFailedCreateScope)
        }
        return
    }

    c.JSON(http.StatusCreated, scope)
}

// UpdateScope updates a scope's name and priority
// @Summary Update a menu scope
// @Description Update a menu scope's name and/or priority
// @Tags Menu
// @Accept json
// @Produce json
// @Param scope_id path string true "Scope ID"
// @Param scope body UpdateScopeRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /menu/scopes/{scope_id} [put]
// @Security Bearer
func UpdateScope(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    var req UpdateScopeRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    scopeID := c.Param("scope_id")
    var scope models.MenuScope
    if err := database.DB.First(&scope, "id = ?", scopeID).Error; err != nil {
        response.Error(c, http.StatusBadRequest, ErrScopeNotFound)
        return
    }

    updates := map[string]interface{}{}
    if req.Name != "" {
        updates["name"] = req.Name
    }
    if req.Priority != nil {
        updates["priority"] = *req.Priority
    }

    if len(updates) > 0 {
        err := withTimeout(func(ctx context.Context) error {
            return database.DB.WithContext(ctx).Model(&scope).Updates(updates).Error
        })
        if err != nil {
            response.Error(c, http.StatusInternalServerError, ErrFailedUpdateScope)
            return
        }
    }

    c.Status(http.StatusNoContent)
}

// DeleteScope deletes a scope and all of its configurations
// @Summary Delete a menu scope
// @Description Delete a menu scope; its configurations and items are removed with it
// @Tags Menu
// @Produce json
// @Param scope_id path string true "Scope ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/scopes/{scope_id} [delete]
// @Security Bearer
func DeleteScope(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    scopeID := c.Param("scope_id")
    var scope models.MenuScope
    if err := database.DB.First(&scope, "id = ?", scopeID).Error; err != nil {
        response.Error(c, http.StatusBadRequest, ErrScopeNotFound)
        return
    }

    err := database.DB.Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("config_id IN (?)",
            tx.Model(&models.MenuConfig{}).Select("id").Where("scope_id = ?", scope.ID),
        ).Delete(&models.MenuItem{}).Error; err != nil {
            return err
        }
        if err := tx.Where("scope_id = ?", scope.ID).Delete(&models.MenuConfig{}).Error; err != nil {
            return err
        }
        return tx.Delete(&scope).Error
    })

    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFailedDeleteScope)
        return
    }

    c.Status(http.StatusNoContent)
}
