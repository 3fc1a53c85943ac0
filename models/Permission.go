package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission is a grantable capability, identified by a codename in the
// "app.codename" form (ex: "syshealth.view_access_dashboard")
type Permission struct {
    ID       string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Codename string `gorm:"type:varchar(150);unique;not null" json:"codename"`
    Name     string `gorm:"type:varchar(255)" json:"name"`
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
    if p.ID == "" {
        p.ID = uuid.NewString()
    }
    return nil
}
