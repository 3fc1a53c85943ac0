package services

import (
	"sync"
	"time"

	"backoffice/database"
	"backoffice/metrics"
	"backoffice/models"
)

const accessSettingsCacheSeconds = 60

// accessSettingsCache holds the singleton settings row with an explicit
// (payload, fetchedAt) pair; the clock is injectable for tests
type accessSettingsCache struct {
	mu        sync.Mutex
	value     *models.AccessSettings
	fetchedAt time.Time
	now       func() time.Time
}

var settingsCache = &accessSettingsCache{now: time.Now}

func (c *accessSettingsCache) isExpired(now time.Time) bool {
	return c.value == nil || now.Sub(c.fetchedAt) >= accessSettingsCacheSeconds*time.Second
}

// GetAccessSettings returns the cached access monitoring settings, creating
// the singleton row with sensible ignore defaults on first use
func GetAccessSettings(force bool) (*models.AccessSettings, error) {
	settingsCache.mu.Lock()
	defer settingsCache.mu.Unlock()

	now := settingsCache.now()
	if !force && !settingsCache.isExpired(now) {
		metrics.CacheHits.Inc()
		return settingsCache.value, nil
	}
	metrics.CacheMisses.Inc()

	var settings models.AccessSettings
	err := database.DB.First(&settings).Error
	if err != nil {
		settings = models.AccessSettings{
			OnlineWindowMinutes: 5,
			AutoRefreshSeconds:  10,
			LogAnonymous:        true,
			SamplingRatio:       1,
			RetentionDays:       90,
			IgnorePaths:         models.StringList{"/static/", "/media/", "/health/"},
		}
		if err := database.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
	}

	settingsCache.value = &settings
	settingsCache.fetchedAt = now
	return &settings, nil
}

// RefreshAccessSettings drops the cache so the next read hits the database;
// called after the settings row is edited
func RefreshAccessSettings(settings *models.AccessSettings) {
	settingsCache.mu.Lock()
	settingsCache.value = settings
	settingsCache.fetchedAt = settingsCache.now()
	settingsCache.mu.Unlock()
}

// AccessSummary aggregates the dashboard numbers over the online window
type AccessSummary struct {
	OnlineUsers         int64     `json:"online_users"`
	EventsInWindow      int64     `json:"events_in_window"`
	AdminEventsInWindow int64     `json:"admin_events_in_window"`
	WindowMinutes       int       `json:"window_minutes"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// GetAccessSummary computes online users and event counters inside the
// configured window
func GetAccessSummary() (*AccessSummary, error) {
	settings, err := GetAccessSettings(false)
	if err != nil {
		return nil, err
	}

	windowMinutes := settings.OnlineWindowMinutes
	if windowMinutes < 1 {
		windowMinutes = 1
	}
	since := time.Now().Add(-time.Duration(windowMinutes) * time.Minute)

	summary := &AccessSummary{WindowMinutes: windowMinutes, GeneratedAt: time.Now()}

	start := time.Now()
	defer metrics.RecordDBOperation("select", "access_events", start)

	if err := database.DB.Model(&models.AccessEvent{}).
		Where("created_at >= ? AND user_id IS NOT NULL", since).
		Distinct("user_id").Count(&summary.OnlineUsers).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.AccessEvent{}).
		Where("created_at >= ?", since).Count(&summary.EventsInWindow).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.AccessEvent{}).
		Where("created_at >= ? AND is_admin = ?", since, true).
		Count(&summary.AdminEventsInWindow).Error; err != nil {
		return nil, err
	}
	return summary, nil
}

// RecentAccessEvents returns the latest events, newest first
func RecentAccessEvents(limit int) ([]models.AccessEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var events []models.AccessEvent
	err := database.DB.
		Preload("User").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// PruneAccessEvents deletes events older than the configured retention.
// With dryRun it only reports how many rows would go.
func PruneAccessEvents(dryRun bool) (int64, time.Time, error) {
	settings, err := GetAccessSettings(true)
	if err != nil {
		return 0, time.Time{}, err
	}

	retentionDays := settings.RetentionDays
	if retentionDays < 1 {
		retentionDays = 1
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	if dryRun {
		var count int64
		err := database.DB.Model(&models.AccessEvent{}).
			Where("created_at < ?", cutoff).Count(&count).Error
		return count, cutoff, err
	}

	result := database.DB.Where("created_at < ?", cutoff).Delete(&models.AccessEvent{})
	return result.RowsAffected, cutoff, result.Error
}
