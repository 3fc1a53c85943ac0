package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is a []string stored as a jsonb column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
    if l == nil {
        return "[]", nil
    }
    data, err := json.Marshal(l)
    if err != nil {
        return nil, err
    }
    return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
    if value == nil {
        *l = nil
        return nil
    }
    switch v := value.(type) {
    case []byte:
        return json.Unmarshal(v, l)
    case string:
        return json.Unmarshal([]byte(v), l)
    }
    return errors.New("unsupported type for StringList")
}

// AccessSettings is the singleton row controlling what the access log
// middleware records
type AccessSettings struct {
    ID                  string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    OnlineWindowMinutes int        `gorm:"default:5" json:"online_window_minutes"`
    AutoRefreshSeconds  int        `gorm:"default:10" json:"auto_refresh_seconds"`
    LogAnonymous        bool       `gorm:"default:true" json:"log_anonymous"`
    LogNonGetRequests   bool       `gorm:"default:false" json:"log_non_get_requests"`
    IgnorePaths         StringList `gorm:"type:jsonb;default:'[]'" json:"ignore_paths"`
    IgnoredUserAgents   StringList `gorm:"type:jsonb;default:'[]'" json:"ignored_user_agents"`
    SamplingRatio       int        `gorm:"default:1" json:"sampling_ratio"`
    RetentionDays       int        `gorm:"default:90" json:"retention_days"`
}

func (s *AccessSettings) BeforeCreate(tx *gorm.DB) error {
    if s.ID == "" {
        s.ID = uuid.NewString()
    }
    return nil
}

// ShouldLogMethod reports whether requests with the given HTTP method are
// recorded; by default only GET traffic is
func (s *AccessSettings) ShouldLogMethod(method string) bool {
    if s.LogNonGetRequests {
        return true
    }
    return strings.ToUpper(method) == "GET"
}

// ShouldIgnorePath reports whether the path matches one of the configured
// ignore prefixes
func (s *AccessSettings) ShouldIgnorePath(path string) bool {
    for _, prefix := range s.NormalizedIgnorePaths() {
        if strings.HasPrefix(path, prefix) {
            return true
        }
    }
    return false
}

// ShouldIgnoreUserAgent reports whether the user agent contains one of the
// configured crawler substrings
func (s *AccessSettings) ShouldIgnoreUserAgent(userAgent string) bool {
    if userAgent == "" {
        return false
    }
    lowered := strings.ToLower(userAgent)
    for _, entry := range s.NormalizedUserAgents() {
        if entry != "" && strings.Contains(lowered, entry) {
            return true
        }
    }
    return false
}

// NormalizedIgnorePaths trims the configured prefixes and strips a trailing
// "*" left over from glob-style input
func (s *AccessSettings) NormalizedIgnorePaths() []string {
    values := make([]string, 0, len(s.IgnorePaths))
    for _, raw := range s.IgnorePaths {
        value := strings.TrimRight(strings.TrimSpace(raw), "*")
        if value != "" {
            values = append(values, value)
        }
    }
    return values
}

// NormalizedUserAgents lowercases and trims the configured substrings
func (s *AccessSettings) NormalizedUserAgents() []string {
    values := make([]string, 0, len(s.IgnoredUserAgents))
    for _, raw := range s.IgnoredUserAgents {
        value := strings.ToLower(strings.TrimSpace(raw))
        if value != "" {
            values = append(values, value)
        }
    }
    return values
}
