package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuConfig is one versioned snapshot of a menu for a scope. Any number of
// snapshots may exist per scope but at most one is active at a time.
type MenuConfig struct {
    ID        string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    ScopeID   string     `gorm:"type:uuid;not null;index" json:"scope_id"`
    Scope     *MenuScope `gorm:"foreignKey:ScopeID;constraint:OnDelete:CASCADE" json:"scope,omitempty"`
    IsActive  bool       `gorm:"default:false;index" json:"is_active"`
    CreatedAt time.Time  `json:"created_at"`
    UpdatedAt time.Time  `json:"updated_at"`

    Items []*MenuItem `gorm:"foreignKey:ConfigID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (c *MenuConfig) BeforeCreate(tx *gorm.DB) error {
    if c.ID == "" {
        c.ID = uuid.NewString()
    }
    return nil
}

// Activate marks this config as the one in effect for its scope, deactivating
// every sibling in the same transaction so two configs are never active at
// once for a scope
func (c *MenuConfig) Activate(db *gorm.DB) error {
    return db.Transaction(func(tx *gorm.DB) error {
        if err := tx.Model(&MenuConfig{}).
            Where("scope_id = ? AND id <> ?", c.ScopeID, c.ID).
            Update("is_active", false).Error; err != nil {
            return err
        }
        c.IsActive = true
        return tx.Model(c).Update("is_active", true).Error
    })
}

// OrderedItems returns the config's items sorted by order then id. Items are
// expected to have been preloaded; the sort makes the call safe either way.
func (c *MenuConfig) OrderedItems() []*MenuItem {
    items := make([]*MenuItem, len(c.Items))
    copy(items, c.Items)
    sort.SliceStable(items, func(i, j int) bool {
        if items[i].Order != items[j].Order {
            return items[i].Order < items[j].Order
        }
        return items[i].ID < items[j].ID
    })
    return items
}
