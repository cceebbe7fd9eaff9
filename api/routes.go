package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/health"
	"github.com/edenhq/meeting-api/api/jobqueue"
	"github.com/edenhq/meeting-api/api/listeners"
	"github.com/edenhq/meeting-api/api/meetings"
	"github.com/edenhq/meeting-api/api/privacy"
	"github.com/edenhq/meeting-api/api/recordings"
	"github.com/edenhq/meeting-api/api/summaries"
	"github.com/edenhq/meeting-api/api/transcripts"
	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/api/users"
	"github.com/edenhq/meeting-api/api/version"
	"github.com/edenhq/meeting-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	limit := func(rps, burst int) gin.HandlerFunc {
		if cfg != nil && !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		if cfg != nil && cfg.RateLimiting.RequestsPerSecond > 0 {
			rps = cfg.RateLimiting.RequestsPerSecond
		}
		if cfg != nil && cfg.RateLimiting.Burst > 0 {
			burst = cfg.RateLimiting.Burst
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst)
	}

	// Uploads are heavier than reads; keep their limit tighter.
	recordingsGroup := v1.Group("/recordings")
	recordingsGroup.Use(limit(5, 10))
	recordings.RegisterRoutes(recordingsGroup, deps)

	meetingsGroup := v1.Group("/meetings")
	meetingsGroup.Use(limit(10, 20))
	meetings.RegisterRoutes(meetingsGroup, deps)

	transcriptsGroup := v1.Group("/transcripts")
	transcriptsGroup.Use(limit(10, 20))
	transcripts.RegisterRoutes(transcriptsGroup, deps)

	summariesGroup := v1.Group("/summaries")
	summariesGroup.Use(limit(10, 20))
	summaries.RegisterRoutes(summariesGroup, deps)

	listenersGroup := v1.Group("/listeners")
	listenersGroup.Use(limit(10, 20))
	listeners.RegisterRoutes(listenersGroup, deps)

	usersGroup := v1.Group("/users")
	usersGroup.Use(limit(10, 20))
	users.RegisterRoutes(usersGroup, deps)

	privacyGroup := v1.Group("/privacy")
	privacyGroup.Use(limit(5, 10))
	privacy.RegisterRoutes(privacyGroup, deps)

	jobsGroup := v1.Group("/jobs")
	jobsGroup.Use(limit(20, 30))
	jobqueue.RegisterRoutes(jobsGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
