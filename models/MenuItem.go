package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu item types
const (
    ItemTypeModel = "model"
    ItemTypeURL   = "url"
)

// Validation errors for menu items
var (
    ErrItemModelFieldsRequired = errors.New("model items require both an app label and a model name")
    ErrItemURLFieldsRequired   = errors.New("url items require a url name or an absolute url")
    ErrItemTypeUnknown         = errors.New("unknown item type")
)

// MenuItem is one entry inside a MenuConfig: either a link to a registered
// admin model or an arbitrary url (named route or literal address)
type MenuItem struct {
    ID       string      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    ConfigID string      `gorm:"type:uuid;not null;index" json:"config_id"`
    Config   *MenuConfig `gorm:"foreignKey:ConfigID;constraint:OnDelete:CASCADE" json:"-"`
    Order    int         `gorm:"default:0" json:"order"`
    ItemType string      `gorm:"type:varchar(16);default:'model'" json:"item_type"`

    // Section overrides the group the entry is displayed under; empty means
    // the owning app's name (model items) or the generic links section
    Section string `gorm:"type:varchar(150)" json:"section"`
    // Label overrides the display text; empty means the registry default
    Label string `gorm:"type:varchar(150)" json:"label"`

    // Model item fields
    AppLabel  string `gorm:"type:varchar(100)" json:"app_label"`
    ModelName string `gorm:"type:varchar(100)" json:"model_name"`

    // URL item fields
    URLName     string `gorm:"type:varchar(200)" json:"url_name"`
    AbsoluteURL string `gorm:"type:varchar(500)" json:"absolute_url"`

    // Optional extra permission the viewer must hold to see the item
    PermissionCodename string `gorm:"type:varchar(150)" json:"permission_codename"`
}

func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
    if i.ID == "" {
        i.ID = uuid.NewString()
    }
    return nil
}

// BeforeSave normalizes and validates the item on every write
func (i *MenuItem) BeforeSave(tx *gorm.DB) error {
    i.Normalize()
    return i.Validate()
}

// Normalize trims every free-text field and lowercases the app/model
// identifiers so lookups against the registry are case-insensitive
func (i *MenuItem) Normalize() {
    i.ItemType = strings.TrimSpace(strings.ToLower(i.ItemType))
    if i.ItemType == "" {
        i.ItemType = ItemTypeModel
    }
    i.Section = strings.TrimSpace(i.Section)
    i.Label = strings.TrimSpace(i.Label)
    i.AppLabel = strings.ToLower(strings.TrimSpace(i.AppLabel))
    i.ModelName = strings.ToLower(strings.TrimSpace(i.ModelName))
    i.URLName = strings.TrimSpace(i.URLName)
    i.AbsoluteURL = strings.TrimSpace(i.AbsoluteURL)
    i.PermissionCodename = strings.TrimSpace(i.PermissionCodename)
}

// Validate checks the type-specific required fields
func (i *MenuItem) Validate() error {
    switch i.ItemType {
    case ItemTypeModel:
        if i.AppLabel == "" || i.ModelName == "" {
            return ErrItemModelFieldsRequired
        }
    case ItemTypeURL:
        if i.URLName == "" && i.AbsoluteURL == "" {
            return ErrItemURLFieldsRequired
        }
    default:
        return ErrItemTypeUnknown
    }
    return nil
}

// VisibleTo reports whether the viewer passes the item's extra permission
// check; an empty codename means always visible
func (i *MenuItem) VisibleTo(user *User) bool {
    if i.PermissionCodename == "" {
        return true
    }
    return user != nil && user.HasPerm(i.PermissionCodename)
}
