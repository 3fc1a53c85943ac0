package ops

// Error messages constants
const (
	ErrNoPermissionHealth    = "User does not have permission to view system health"
	ErrNoPermissionDashboard = "User does not have permission to view the access dashboard"
	ErrUserNotAllowed        = "User does not have permission to manage operational settings"
	ErrFetchingEvents        = "Failed to fetch access events"
	ErrFetchingSummary       = "Failed to fetch access summary"
	ErrFetchingSettings      = "Failed to fetch access settings"
	ErrSavingSettings        = "Failed to save access settings"
	ErrFetchingHealthConfig  = "Failed to fetch system health config"
	ErrSavingHealthConfig    = "Failed to save system health config"
	ErrPruneFailed           = "Failed to prune access events"
)

// AccessSettingsRequest updates the access logging settings singleton
type AccessSettingsRequest struct {
	OnlineWindowMinutes int      `json:"online_window_minutes" binding:"required,min=1"`
	AutoRefreshSeconds  int      `json:"auto_refresh_seconds" binding:"required,min=1"`
	LogAnonymous        *bool    `json:"log_anonymous" binding:"required"`
	LogNonGetRequests   *bool    `json:"log_non_get_requests" binding:"required"`
	IgnorePaths         []string `json:"ignore_paths"`
	IgnoredUserAgents   []string `json:"ignored_user_agents"`
	SamplingRatio       int      `json:"sampling_ratio" binding:"required,min=1"`
	RetentionDays       int      `json:"retention_days" binding:"required,min=1"`
}

// HealthConfigRequest updates the system health thresholds singleton
type HealthConfigRequest struct {
	WarnCPULoadPerCore float64 `json:"warn_cpu_load_per_core" binding:"required,gt=0"`
	CritCPULoadPerCore float64 `json:"crit_cpu_load_per_core" binding:"required,gt=0"`
	WarnMemUsedPct     float64 `json:"warn_mem_used_pct" binding:"required,gt=0,lte=100"`
	CritMemUsedPct     float64 `json:"crit_mem_used_pct" binding:"required,gt=0,lte=100"`
	WarnDiskUsedPct    float64 `json:"warn_disk_used_pct" binding:"required,gt=0,lte=100"`
	CritDiskUsedPct    float64 `json:"crit_disk_used_pct" binding:"required,gt=0,lte=100"`
	CacheSeconds       int     `json:"cache_seconds" binding:"required,min=1"`
}

// PruneResponse reports the outcome of a retention prune
type PruneResponse struct {
	DryRun  bool   `json:"dry_run"`
	Deleted int64  `json:"deleted"`
	Cutoff  string `json:"cutoff"`
}
