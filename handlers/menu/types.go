package menu

// Error messages constants
const (
	ErrNoPermission        = "Only superusers can manage menus"
	ErrScopeNotFound       = "Scope not found"
	ErrConfigNotFound      = "Menu configuration not found"
	ErrItemNotFound        = "Menu item not found"
	ErrGroupNotFound       = "Group not found"
	ErrLookupFailed        = "Failed to look up record"
	ErrFetchingScopes      = "Failed to fetch scopes"
	ErrFetchingConfigs     = "Failed to fetch menu configurations"
	ErrFailedCreateScope   = "Failed to create scope"
	ErrFailedUpdateScope   = "Failed to update scope"
	ErrFailedDeleteScope   = "Failed to delete scope"
	ErrFailedCreateConfig  = "Failed to create menu configuration"
	ErrFailedDeleteConfig  = "Failed to delete menu configuration"
	ErrFailedActivate      = "Failed to activate menu configuration"
	ErrFailedCreateItem    = "Failed to create menu item"
	ErrFailedUpdateItem    = "Failed to update menu item"
	ErrFailedDeleteItem    = "Failed to delete menu item"
)

// CreateScopeRequest creates a menu scope; omit group_id for the default scope
type CreateScopeRequest struct {
	Name     string  `json:"name" binding:"required"`
	GroupID  *string `json:"group_id"`
	Priority int     `json:"priority"`
}

// UpdateScopeRequest updates name and/or priority
type UpdateScopeRequest struct {
	Name     string `json:"name"`
	Priority *int   `json:"priority"`
}

// CreateConfigRequest creates a config under a scope
type CreateConfigRequest struct {
	ScopeID  string `json:"scope_id" binding:"required"`
	IsActive bool   `json:"is_active"`
}

// ItemRequest creates or updates a menu item
type ItemRequest struct {
	ConfigID           string `json:"config_id" binding:"required"`
	Order              int    `json:"order"`
	ItemType           string `json:"item_type" binding:"required,oneof=model url"`
	Section            string `json:"section"`
	Label              string `json:"label"`
	AppLabel           string `json:"app_label"`
	ModelName          string `json:"model_name"`
	URLName            string `json:"url_name"`
	AbsoluteURL        string `json:"absolute_url"`
	PermissionCodename string `json:"permission_codename"`
}
