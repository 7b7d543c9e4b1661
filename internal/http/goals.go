package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalsController serves committed goals.
type GoalsController struct {
	store GoalStore
}

// NewGoalsController creates a new GoalsController.
func NewGoalsController(store GoalStore) *GoalsController {
	return &GoalsController{store: store}
}

// GetAllGoals handles GET /api/goals.
func (controller *GoalsController) GetAllGoals(c *gin.Context) {
	goals, err := controller.store.GetAllGoals()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, goals)
}

// GetGoal handles GET /api/goals/:id.
func (controller *GoalsController) GetGoal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	goal, err := controller.store.GetGoalByID(uint(id))
	if err == gorm.ErrRecordNotFound {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/goals/:id.
func (controller *GoalsController) DeleteGoal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	if err := controller.store.DeleteGoal(uint(id)); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"deleted": true})
}

// GetStats handles GET /api/goals/stats.
func (controller *GoalsController) GetStats(c *gin.Context) {
	totalGoals, totalTasks, err := controller.store.GetStats()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"total_goals": totalGoals,
		"total_tasks": totalTasks,
	})
}

// parseTimeQuery reads an RFC3339 or date-only query parameter.
func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
