package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemHealthConfig is the singleton row of thresholds used to classify the
// server health snapshot
type SystemHealthConfig struct {
    ID                 string  `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    WarnCPULoadPerCore float64 `gorm:"default:0.7" json:"warn_cpu_load_per_core"`
    CritCPULoadPerCore float64 `gorm:"default:1.0" json:"crit_cpu_load_per_core"`
    WarnMemUsedPct     float64 `gorm:"default:80" json:"warn_mem_used_pct"`
    CritMemUsedPct     float64 `gorm:"default:90" json:"crit_mem_used_pct"`
    WarnDiskUsedPct    float64 `gorm:"default:80" json:"warn_disk_used_pct"`
    CritDiskUsedPct    float64 `gorm:"default:90" json:"crit_disk_used_pct"`
    CacheSeconds       int     `gorm:"default:15" json:"cache_seconds"`
}

func (c *SystemHealthConfig) BeforeCreate(tx *gorm.DB) error {
    if c.ID == "" {
        c.ID = uuid.NewString()
    }
    return nil
}
