package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that can sign in to the back office
type User struct {
    ID            string        `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Email         string        `gorm:"type:varchar(255);unique;not null" json:"email"`
    Firstname     string        `gorm:"type:varchar(150)" json:"firstname"`
    Lastname      string        `gorm:"type:varchar(150)" json:"lastname"`
    Password      string        `gorm:"type:varchar(255);not null" json:"-"`
    IsStaff       bool          `gorm:"default:false" json:"is_staff"`
    IsSuperuser   bool          `gorm:"default:false" json:"is_superuser"`
    Blocked       bool          `gorm:"default:false" json:"blocked"`
    LastConnected *time.Time    `json:"last_connected"`
    Groups        []*Group      `gorm:"many2many:user_groups;" json:"groups"`
    Permissions   []*Permission `gorm:"many2many:user_permissions;" json:"permissions"`
}

// BeforeCreate generates the ID client-side so objects created outside
// Postgres (tests, fixtures) still get a uuid
func (u *User) BeforeCreate(tx *gorm.DB) error {
    if u.ID == "" {
        u.ID = uuid.NewString()
    }
    return nil
}

// GroupIDs returns the IDs of the groups the user belongs to
func (u *User) GroupIDs() []string {
    ids := make([]string, 0, len(u.Groups))
    for _, group := range u.Groups {
        ids = append(ids, group.ID)
    }
    return ids
}

// HasPerm reports whether the user holds the given permission codename,
// either directly, through one of their groups, or implicitly as a superuser
func (u *User) HasPerm(codename string) bool {
    if u.IsSuperuser {
        return true
    }
    for _, perm := range u.Permissions {
        if perm.Codename == codename {
            return true
        }
    }
    for _, group := range u.Groups {
        for _, perm := range group.Permissions {
            if perm.Codename == codename {
                return true
            }
        }
    }
    return false
}
