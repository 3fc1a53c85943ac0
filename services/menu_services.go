package services

import (
	"errors"
	"time"

	"backoffice/database"
	"backoffice/metrics"
	"backoffice/models"

	"gorm.io/gorm"
)

// ResolveScope picks the single menu scope that applies to the user.
// Anonymous users (nil) get the default scope; authenticated users get the
// highest-priority scope among their groups, falling back to the default
// scope when none matches. Returns nil without error when no scope applies.
func ResolveScope(user *models.User) (*models.MenuScope, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("select", "menu_scopes", start)

	var scopes []models.MenuScope
	if err := models.OrderedScopes(database.DB).Find(&scopes).Error; err != nil {
		return nil, err
	}

	var groupIDs []string
	if user != nil {
		groupIDs = user.GroupIDs()
	}
	return PickScope(scopes, groupIDs), nil
}

// PickScope applies the scope selection rule to an already ordered scope
// list. Pure: same scopes and memberships always pick the same scope.
func PickScope(scopes []models.MenuScope, groupIDs []string) *models.MenuScope {
	memberships := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		memberships[id] = true
	}

	var fallback *models.MenuScope
	for i := range scopes {
		scope := &scopes[i]
		if scope.IsDefault() {
			if fallback == nil {
				fallback = scope
			}
			continue
		}
		if memberships[*scope.GroupID] {
			return scope
		}
	}
	return fallback
}

// ActiveConfigForScope returns the config currently in effect for the scope,
// with its items preloaded in display order, or nil when the scope is nil or
// has no active config
func ActiveConfigForScope(scope *models.MenuScope) (*models.MenuConfig, error) {
	if scope == nil {
		return nil, nil
	}

	start := time.Now()
	defer metrics.RecordDBOperation("select", "menu_configs", start)

	var config models.MenuConfig
	err := database.DB.
		Where("scope_id = ? AND is_active = ?", scope.ID, true).
		Order("updated_at DESC").Order("id DESC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC").Order("id ASC")
		}).
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}
