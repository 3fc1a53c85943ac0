package middleware

import (
	"log"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"

	"backoffice/adminsite"
	"backoffice/database"
	"backoffice/metrics"
	"backoffice/models"
	"backoffice/realtime"
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

// maxLoggedErrors caps how many persistence failures are written to the log;
// a broken table must not flood it on every request
const maxLoggedErrors = 3

var accessLogErrors int64

type adminPrefixCache struct {
	once   sync.Once
	prefix string
}

// AccessLogMiddleware records access events with as little overhead as
// possible: the decision runs inline after the response, the insert runs in
// a goroutine and failures never reach the client.
func AccessLogMiddleware(routes *adminsite.RouteTable) gin.HandlerFunc {
	cache := &adminPrefixCache{}

	return func(c *gin.Context) {
		c.Next()

		settings, err := services.GetAccessSettings(false)
		if err != nil {
			recordAccessLogError(err)
			return
		}

		user := GetUserIfAuthenticated(c)
		path := c.Request.URL.Path

		if !ShouldRecord(settings, c.Request.Method, path, c.Request.UserAgent(), user != nil) {
			return
		}
		if !SampleAccepted(settings.SamplingRatio, rand.Intn) {
			return
		}

		event := models.AccessEvent{
			IPAddress: c.ClientIP(),
			Path:      path,
			Referrer:  c.Request.Referer(),
			UserAgent: c.Request.UserAgent(),
			IsAdmin:   isAdminPath(cache, routes, path),
		}
		if user != nil {
			userID := user.ID
			event.UserID = &userID
		} else if event.IPAddress == "" {
			// nothing identifies this request, skip it
			return
		}
		event.Truncate()

		go persistAccessEvent(event)
	}
}

// ShouldRecord applies the configured filters: method policy, ignore-path
// prefixes, crawler user agents and the anonymous-visitor switch
func ShouldRecord(settings *models.AccessSettings, method string, path string, userAgent string, authenticated bool) bool {
	if settings == nil || path == "" {
		return false
	}
	if !settings.ShouldLogMethod(method) {
		return false
	}
	if settings.ShouldIgnorePath(path) {
		return false
	}
	if settings.ShouldIgnoreUserAgent(userAgent) {
		return false
	}
	if !authenticated && !settings.LogAnonymous {
		return false
	}
	return true
}

// SampleAccepted keeps 1 out of every ratio requests; a ratio of 1 or less
// keeps everything. The intn source is injectable for tests.
func SampleAccepted(ratio int, intn func(int) int) bool {
	if ratio <= 1 {
		return true
	}
	return intn(ratio) == 0
}

func persistAccessEvent(event models.AccessEvent) {
	if err := database.DB.Create(&event).Error; err != nil {
		metrics.AccessEventsDropped.Inc()
		recordAccessLogError(err)
		return
	}
	metrics.AccessEventsLogged.Inc()
	realtime.BroadcastAccessEvent(event)
}

func recordAccessLogError(err error) {
	if atomic.AddInt64(&accessLogErrors, 1) <= maxLoggedErrors {
		log.Printf("Failed to record access event: %v", err)
	}
}

func isAdminPath(cache *adminPrefixCache, routes *adminsite.RouteTable, path string) bool {
	cache.once.Do(func() {
		cache.prefix = "/admin/"
		if routes != nil {
			if resolved, err := routes.Resolve("admin:index"); err == nil {
				cache.prefix = resolved
			}
		}
	})
	return strings.HasPrefix(path, cache.prefix)
}
