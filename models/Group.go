package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group represents a named set of users sharing permissions and a menu audience
type Group struct {
    ID          string        `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name        string        `gorm:"type:varchar(150);unique;not null" json:"name"`
    Description string        `gorm:"type:varchar(255)" json:"description"`
    Users       []*User       `gorm:"many2many:user_groups;" json:"users,omitempty"`
    Permissions []*Permission `gorm:"many2many:group_permissions;" json:"permissions,omitempty"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
    if g.ID == "" {
        g.ID = uuid.NewString()
    }
    return nil
}
