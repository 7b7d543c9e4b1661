package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	trelloImporter := NewTrelloImportController(cfg.Enricher, cfg.Registry, cfg.GoalStore)
	goalsController := NewGoalsController(cfg.GoalStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Board import endpoints: stage, inspect, then confirm or discard
	router.POST("/api/import/trello", trelloImporter.Import)
	router.GET("/api/import/trello/:id", trelloImporter.GetStaged)
	router.POST("/api/import/trello/:id/confirm", trelloImporter.Confirm)
	router.POST("/api/import/trello/:id/discard", trelloImporter.Discard)

	// Goals API endpoints
	router.GET("/api/goals", goalsController.GetAllGoals)
	router.GET("/api/goals/stats", goalsController.GetStats)
	router.GET("/api/goals/:id", goalsController.GetGoal)
	router.DELETE("/api/goals/:id", goalsController.DeleteGoal)

	// Calendar endpoints
	if cfg.EventStore != nil {
		calendarImporter := NewCalendarImportController(cfg.EventStore)
		router.POST("/api/import/calendar", calendarImporter.Import)
		router.GET("/api/events", calendarImporter.ListEvents)
	}

	// Background sync endpoint
	if cfg.SyncScheduler != nil {
		router.POST("/api/sync/newcontent", func(c *gin.Context) {
			cfg.SyncScheduler.RunNow()
			c.IndentedJSON(http.StatusAccepted, gin.H{"status": "refresh scheduled"})
		})
	}

	return router
}
