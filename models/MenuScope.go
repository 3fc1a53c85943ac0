package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDefaultScopeExists is returned when saving a second scope without a group
var ErrDefaultScopeExists = errors.New("a default scope without a group already exists")

// MenuScope targets a menu at an audience: either one group, or every user
// that matches nothing else (the default scope, GroupID null). Only one
// default scope may exist at a time.
type MenuScope struct {
    ID       string  `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name     string  `gorm:"type:varchar(150);not null" json:"name"`
    GroupID  *string `gorm:"type:uuid;unique" json:"group_id"`
    Group    *Group  `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
    Priority int     `gorm:"default:0" json:"priority"`

    Configs []*MenuConfig `gorm:"foreignKey:ScopeID;constraint:OnDelete:CASCADE" json:"configs,omitempty"`
}

// IsDefault reports whether this is the catch-all scope
func (s *MenuScope) IsDefault() bool {
    return s.GroupID == nil
}

func (s *MenuScope) BeforeCreate(tx *gorm.DB) error {
    if s.ID == "" {
        s.ID = uuid.NewString()
    }
    return nil
}

// BeforeSave enforces the single-default-scope invariant at write time so the
// read path never has to disambiguate between two catch-all scopes
func (s *MenuScope) BeforeSave(tx *gorm.DB) error {
    s.Name = strings.TrimSpace(s.Name)

    if s.GroupID != nil {
        return nil
    }

    var count int64
    query := tx.Model(&MenuScope{}).Where("group_id IS NULL")
    if s.ID != "" {
        query = query.Where("id <> ?", s.ID)
    }
    if err := query.Count(&count).Error; err != nil {
        return err
    }
    if count > 0 {
        return ErrDefaultScopeExists
    }
    return nil
}

// OrderedScopes applies the deterministic scope ordering: higher priority
// first, then name, then id as the final tie-break
func OrderedScopes(db *gorm.DB) *gorm.DB {
    return db.Order("priority DESC").Order("name ASC").Order("id ASC")
}
