package services

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"backoffice/database"
	"backoffice/metrics"
	"backoffice/models"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthStatus classifies a measured value against configured thresholds
type HealthStatus string

const (
	StatusOK      HealthStatus = "ok"
	StatusWarn    HealthStatus = "warn"
	StatusCrit    HealthStatus = "crit"
	StatusUnknown HealthStatus = "unknown"
)

const defaultHealthCacheSeconds = 15

// HealthThresholds are the classification limits, loaded from the
// SystemHealthConfig row or defaulted
type HealthThresholds struct {
	WarnCPULoadPerCore float64
	CritCPULoadPerCore float64
	WarnMemUsedPct     float64
	CritMemUsedPct     float64
	WarnDiskUsedPct    float64
	CritDiskUsedPct    float64
}

func DefaultHealthThresholds() HealthThresholds {
	return HealthThresholds{
		WarnCPULoadPerCore: 0.7,
		CritCPULoadPerCore: 1.0,
		WarnMemUsedPct:     80,
		CritMemUsedPct:     90,
		WarnDiskUsedPct:    80,
		CritDiskUsedPct:    90,
	}
}

// CPUHealth describes load relative to core count
type CPUHealth struct {
	Cores       int          `json:"cores"`
	Load1       float64      `json:"load1"`
	Load5       float64      `json:"load5"`
	Load15      float64      `json:"load15"`
	LoadKnown   bool         `json:"load_known"`
	LoadPerCore float64      `json:"load_per_core"`
	Status      HealthStatus `json:"status"`
}

// MemoryHealth describes host memory usage
type MemoryHealth struct {
	Total        uint64       `json:"total"`
	Used         uint64       `json:"used"`
	UsedPct      float64      `json:"used_pct"`
	TotalDisplay string       `json:"total_display"`
	UsedDisplay  string       `json:"used_display"`
	Status       HealthStatus `json:"status"`
}

// DiskHealth describes usage of the root filesystem
type DiskHealth struct {
	Total        uint64       `json:"total"`
	Used         uint64       `json:"used"`
	Free         uint64       `json:"free"`
	UsedPct      float64      `json:"used_pct"`
	TotalDisplay string       `json:"total_display"`
	UsedDisplay  string       `json:"used_display"`
	FreeDisplay  string       `json:"free_display"`
	Status       HealthStatus `json:"status"`
}

// UptimeHealth describes how long the host has been up
type UptimeHealth struct {
	Seconds uint64 `json:"seconds"`
	Known   bool   `json:"known"`
	Display string `json:"display"`
}

// HealthSnapshot is one collected view of the server, served to the ops
// dashboard and cached for a short TTL
type HealthSnapshot struct {
	Hostname     string       `json:"hostname"`
	Platform     string       `json:"platform"`
	Kernel       string       `json:"kernel"`
	GoVersion    string       `json:"go_version"`
	CollectedAt  time.Time    `json:"collected_at"`
	CacheSeconds int          `json:"cache_seconds"`
	CPU          CPUHealth    `json:"cpu"`
	Memory       MemoryHealth `json:"memory"`
	Disk         DiskHealth   `json:"disk"`
	Uptime       UptimeHealth `json:"uptime"`
}

// HealthCollector owns the snapshot cache. The clock is injectable so expiry
// is testable without sleeping.
type HealthCollector struct {
	mu       sync.Mutex
	cached   *HealthSnapshot
	cachedAt time.Time
	now      func() time.Time
}

func NewHealthCollector() *HealthCollector {
	return &HealthCollector{now: time.Now}
}

// Snapshot returns the cached snapshot when still fresh, collecting a new one
// otherwise. forceRefresh bypasses the cache.
func (c *HealthCollector) Snapshot(forceRefresh bool) *HealthSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !forceRefresh && c.cached != nil && !c.isExpired(now) {
		metrics.CacheHits.Inc()
		return c.cached
	}
	metrics.CacheMisses.Inc()

	thresholds, cacheSeconds := loadHealthConfig()
	snapshot := CollectHealthSnapshot(thresholds)
	snapshot.CollectedAt = now
	snapshot.CacheSeconds = cacheSeconds

	c.cached = snapshot
	c.cachedAt = now
	return snapshot
}

func (c *HealthCollector) isExpired(now time.Time) bool {
	ttl := time.Duration(defaultHealthCacheSeconds) * time.Second
	if c.cached != nil && c.cached.CacheSeconds > 0 {
		ttl = time.Duration(c.cached.CacheSeconds) * time.Second
	}
	return now.Sub(c.cachedAt) >= ttl
}

func loadHealthConfig() (HealthThresholds, int) {
	thresholds := DefaultHealthThresholds()
	cacheSeconds := defaultHealthCacheSeconds

	var config models.SystemHealthConfig
	if err := database.DB.First(&config).Error; err == nil {
		thresholds = HealthThresholds{
			WarnCPULoadPerCore: config.WarnCPULoadPerCore,
			CritCPULoadPerCore: config.CritCPULoadPerCore,
			WarnMemUsedPct:     config.WarnMemUsedPct,
			CritMemUsedPct:     config.CritMemUsedPct,
			WarnDiskUsedPct:    config.WarnDiskUsedPct,
			CritDiskUsedPct:    config.CritDiskUsedPct,
		}
		if config.CacheSeconds > 0 {
			cacheSeconds = config.CacheSeconds
		}
	}
	return thresholds, cacheSeconds
}

// CollectHealthSnapshot gathers host metrics and classifies them. Individual
// probe failures degrade their section to "unknown" instead of failing the
// whole snapshot.
func CollectHealthSnapshot(thresholds HealthThresholds) *HealthSnapshot {
	snapshot := &HealthSnapshot{GoVersion: runtime.Version()}

	if info, err := host.Info(); err == nil {
		snapshot.Hostname = info.Hostname
		snapshot.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		snapshot.Kernel = info.KernelVersion
		snapshot.Uptime = UptimeHealth{
			Seconds: info.Uptime,
			Known:   true,
			Display: FormatDuration(time.Duration(info.Uptime) * time.Second),
		}
	} else {
		snapshot.Uptime = UptimeHealth{Display: "N/A"}
	}

	snapshot.CPU = collectCPUHealth(thresholds)
	snapshot.Memory = collectMemoryHealth(thresholds)
	snapshot.Disk = collectDiskHealth(thresholds)
	return snapshot
}

func collectCPUHealth(thresholds HealthThresholds) CPUHealth {
	info := CPUHealth{Cores: runtime.NumCPU(), Status: StatusUnknown}

	avg, err := load.Avg()
	if err != nil {
		return info
	}
	info.Load1 = avg.Load1
	info.Load5 = avg.Load5
	info.Load15 = avg.Load15
	info.LoadKnown = true

	metrics.SystemLoadAverage.WithLabelValues("1min").Set(avg.Load1)
	metrics.SystemLoadAverage.WithLabelValues("5min").Set(avg.Load5)
	metrics.SystemLoadAverage.WithLabelValues("15min").Set(avg.Load15)

	if info.Cores > 0 {
		info.LoadPerCore = avg.Load1 / float64(info.Cores)
		info.Status = DetermineStatus(info.LoadPerCore, thresholds.WarnCPULoadPerCore, thresholds.CritCPULoadPerCore)
	}
	return info
}

func collectMemoryHealth(thresholds HealthThresholds) MemoryHealth {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemoryHealth{Status: StatusUnknown, TotalDisplay: "N/A", UsedDisplay: "N/A"}
	}

	metrics.SystemMemoryUsage.WithLabelValues("total").Set(float64(vm.Total))
	metrics.SystemMemoryUsage.WithLabelValues("used").Set(float64(vm.Used))
	metrics.SystemMemoryUsage.WithLabelValues("available").Set(float64(vm.Available))

	return MemoryHealth{
		Total:        vm.Total,
		Used:         vm.Used,
		UsedPct:      vm.UsedPercent,
		TotalDisplay: FormatBytes(vm.Total),
		UsedDisplay:  FormatBytes(vm.Used),
		Status:       DetermineStatus(vm.UsedPercent, thresholds.WarnMemUsedPct, thresholds.CritMemUsedPct),
	}
}

func collectDiskHealth(thresholds HealthThresholds) DiskHealth {
	usage, err := disk.Usage("/")
	if err != nil {
		return DiskHealth{Status: StatusUnknown, TotalDisplay: "N/A", UsedDisplay: "N/A", FreeDisplay: "N/A"}
	}

	metrics.SystemDiskUsage.WithLabelValues("total").Set(float64(usage.Total))
	metrics.SystemDiskUsage.WithLabelValues("used").Set(float64(usage.Used))
	metrics.SystemDiskUsage.WithLabelValues("free").Set(float64(usage.Free))

	return DiskHealth{
		Total:        usage.Total,
		Used:         usage.Used,
		Free:         usage.Free,
		UsedPct:      usage.UsedPercent,
		TotalDisplay: FormatBytes(usage.Total),
		UsedDisplay:  FormatBytes(usage.Used),
		FreeDisplay:  FormatBytes(usage.Free),
		Status:       DetermineStatus(usage.UsedPercent, thresholds.WarnDiskUsedPct, thresholds.CritDiskUsedPct),
	}
}

// DetermineStatus classifies a value: crit wins over warn, values below both
// thresholds are ok
func DetermineStatus(value float64, warn float64, crit float64) HealthStatus {
	if value >= crit {
		return StatusCrit
	}
	if value >= warn {
		return StatusWarn
	}
	return StatusOK
}

// FormatBytes renders a byte count with a binary unit suffix
func FormatBytes(value uint64) string {
	if value == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	magnitude := int(math.Log(float64(value)) / math.Log(1024))
	if magnitude >= len(units) {
		magnitude = len(units) - 1
	}
	if magnitude == 0 {
		return fmt.Sprintf("%d B", value)
	}
	scaled := float64(value) / math.Pow(1024, float64(magnitude))
	return fmt.Sprintf("%.2f %s", scaled, units[magnitude])
}

// FormatDuration renders an uptime as days, hours and minutes
func FormatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
