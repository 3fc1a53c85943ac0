package menu

import (
	"context"
	"errors"
	"net/http"

	"backoffice/database"
	"backoffice/models"
	"backoffice/utils/response"

	"github.com/gin-gonic/gin"
)

// CreateItem adds an item to a configuration
// @Summary Create a menu item
// @Description Add a model link or a custom url entry to a menu configuration
// @Tags Menu
// @Accept json
// @Produce json
// @Param item body ItemRequest true "Item to create"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /menu/items [post]
// @Security Bearer
func CreateItem(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    var req ItemRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    if !recordExists(c, &models.MenuConfig{}, req.ConfigID, ErrConfigNotFound) {
        return
    }

    item := models.MenuItem{
        ConfigID:           req.ConfigID,
        Order:              req.Order,
        ItemType:           req.ItemType,
        Section:            req.Section,
        Label:              req.Label,
        AppLabel:           req.AppLabel,
        ModelName:          req.ModelName,
        URLName:            req.URLName,
        AbsoluteURL:        req.AbsoluteURL,
        PermissionCodename: req.PermissionCodename,
    }

    err := withTimeout(func(ctx context.Context) error {
        return database.DB.WithContext(ctx).Create(&item).Error
    })
    if err != nil {
        if isItemValidationError(err) {
            response.Error(c, http.StatusBadRequest, err.Error())
        } else {
            response.Error(c, http.StatusInternalServerError, ErrFailedCreateItem)
        }
        return
    }

    c.JSON(http.StatusCreated, item)
}

// UpdateItem replaces an item's fields
// @Summary Update a menu item
// @Description Update a menu item; fields are re-normalized and re-validated
// @Tags Menu
// @Accept json
// @Produce json
// @Param item_id path string true "Item ID"
// @Param item body ItemRequest true "New item values"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /menu/items/{item_id} [put]
// @Security Bearer
func UpdateItem(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    var req ItemRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    itemID := c.Param("item_id")
    var item models.MenuItem
    if err := database.DB.First(&item, "id = ?", itemID).Error; err != nil {
        response.Error(c, http.StatusBadRequest, ErrItemNotFound)
        return
    }

    item.Order = req.Order
    item.ItemType = req.ItemType
    item.Section = req.Section
    item.Label = req.Label
    item.AppLabel = req.AppLabel
    item.ModelName = req.ModelName
    item.URLName = req.URLName
    item.AbsoluteURL = req.AbsoluteURL
    item.PermissionCodename = req.PermissionCodename

    err := withTimeout(func(ctx context.Context) error {
        return database.DB.WithContext(ctx).Save(&item).Error
    })
    if err != nil {
        if isItemValidationError(err) {
            response.Error(c, http.StatusBadRequest, err.Error())
        } else {
            response.Error(c, http.StatusInternalServerError, ErrFailedUpdateItem)
        }
        return
    }

    c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item from its configuration
// @Summary Delete a menu item
// @Description Remove a menu item
// @Tags Menu
// @Produce json
// @Param item_id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/items/{item_id} [delete]
// @Security Bearer
func DeleteItem(c *gin.Context) {
    if _, ok := requireSuperuser(c); !ok {
        return
    }

    itemID := c.Param("item_id")
    var item models.MenuItem
    if err := database.DB.First(&item, "id = ?", itemID).Error; err != nil {
        response.Error(c, http.StatusBadRequest, ErrItemNotFound)
        return
    }

    if err := database.DB.Delete(&item).Error; err != nil {
        response.Error(c, http.StatusInternalServerError, ErrFailedDeleteItem)
        return
    }

    c.Status(http.StatusNoContent)
}

func isItemValidationError(err error) bool {
    return errors.Is(err, models.ErrItemModelFieldsRequired) ||
        errors.Is(err, models.ErrItemURLFieldsRequired) ||
        errors.Is(err, models.ErrItemTypeUnknown)
}
