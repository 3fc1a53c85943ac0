package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is the profile attached one-to-one to a user account. Profile edits
// are made against the person and mirrored back onto the user record.
type Person struct {
    ID        string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    UserID    string    `gorm:"type:uuid;unique;not null" json:"user_id"`
    User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
    Firstname string    `gorm:"type:varchar(150)" json:"firstname"`
    Lastname  string    `gorm:"type:varchar(150)" json:"lastname"`
    Email     string    `gorm:"type:varchar(255)" json:"email"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
    if p.ID == "" {
        p.ID = uuid.NewString()
    }
    return nil
}

// AfterSave keeps the owning user's identity fields in sync with the profile
func (p *Person) AfterSave(tx *gorm.DB) error {
    if p.UserID == "" {
        return nil
    }

    var user User
    if err := tx.First(&user, "id = ?", p.UserID).Error; err != nil {
        return err
    }

    updates := map[string]interface{}{}
    if user.Firstname != p.Firstname {
        updates["firstname"] = p.Firstname
    }
    if user.Lastname != p.Lastname {
        updates["lastname"] = p.Lastname
    }
    if p.Email != "" && user.Email != p.Email {
        updates["email"] = p.Email
    }

    if len(updates) == 0 {
        return nil
    }
    return tx.Model(&User{}).Where("id = ?", p.UserID).Updates(updates).Error
}
