package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessEvent is one recorded request, written by the access log middleware
type AccessEvent struct {
    ID        string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    UserID    *string   `gorm:"type:uuid;index" json:"user_id"`
    User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
    IPAddress string    `gorm:"type:varchar(45);index" json:"ip_address"`
    Path      string    `gorm:"type:varchar(512)" json:"path"`
    Referrer  string    `gorm:"type:varchar(512)" json:"referrer"`
    UserAgent string    `gorm:"type:varchar(256)" json:"user_agent"`
    IsAdmin   bool      `gorm:"default:false;index" json:"is_admin"`
    CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (e *AccessEvent) BeforeCreate(tx *gorm.DB) error {
    if e.ID == "" {
        e.ID = uuid.NewString()
    }
    return nil
}

// Truncate clamps the free-text fields to their column limits so an oversized
// header can never fail the insert
func (e *AccessEvent) Truncate() {
    e.IPAddress = clamp(e.IPAddress, 45)
    e.Path = clamp(e.Path, 512)
    e.Referrer = clamp(e.Referrer, 512)
    e.UserAgent = clamp(e.UserAgent, 256)
}

// clamp cuts to at most max characters. varchar limits count characters, and
// a byte cut could split a rune and leave invalid UTF-8 behind
func clamp(value string, max int) string {
    if utf8.RuneCountInString(value) <= max {
        return value
    }
    return string([]rune(value)[:max])
}
