package http

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goalboard/goalboard/internal/entities"
	"github.com/goalboard/goalboard/internal/importer"
	"github.com/goalboard/goalboard/internal/metadata"
)

// TrelloImportResponse summarizes a freshly staged board import. The client
// reviews it and either confirms or discards via the follow-up endpoints.
type TrelloImportResponse struct {
	ID        string             `json:"id"`
	GoalTitle string             `json:"goal_title"`
	GoalType  entities.GoalType  `json:"goal_type"`
	BoardType entities.BoardType `json:"board_type"`
	Stats     importer.Stats     `json:"stats"`
	Tasks     []entities.Task    `json:"tasks"`
}

// TrelloImportController handles board export imports.
type TrelloImportController struct {
	enricher *metadata.Enricher
	registry *importer.StagedRegistry
	store    GoalStore
}

// NewTrelloImportController creates a new TrelloImportController.
func NewTrelloImportController(enricher *metadata.Enricher, registry *importer.StagedRegistry, store GoalStore) *TrelloImportController {
	return &TrelloImportController{
		enricher: enricher,
		registry: registry,
		store:    store,
	}
}

// Import handles POST /api/import/trello. The export JSON arrives either as
// an uploaded "file" form field or as the raw request body.
func (controller *TrelloImportController) Import(c *gin.Context) {
	data, err := readImportPayload(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(data) == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "no board export provided"})
		return
	}

	coordinator := importer.NewCoordinator(controller.enricher, func(p importer.Progress) {
		if p.Status != "" {
			log.Printf("[IMPORT] %s %d/%d %s", p.Phase, p.Current, p.Total, p.Status)
		} else {
			log.Printf("[IMPORT] %s %d/%d", p.Phase, p.Current, p.Total)
		}
	})

	result, err := coordinator.Run(c.Request.Context(), data)
	if err != nil {
		c.IndentedJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	id := controller.registry.Put(result)

	c.IndentedJSON(http.StatusOK, TrelloImportResponse{
		ID:        id,
		GoalTitle: result.GoalTitle,
		GoalType:  result.GoalType,
		BoardType: result.BoardType,
		Stats:     result.Stats,
		Tasks:     result.Tasks,
	})
}

// GetStaged handles GET /api/import/trello/:id.
func (controller *TrelloImportController) GetStaged(c *gin.Context) {
	result, ok := controller.registry.Get(c.Param("id"))
	if !ok {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "no staged import with this id"})
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

// Confirm handles POST /api/import/trello/:id/confirm. This is the only
// point where an import reaches the database.
func (controller *TrelloImportController) Confirm(c *gin.Context) {
	goal, err := controller.registry.Commit(c.Param("id"), controller.store)
	if err == importer.ErrNotStaged {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"goal_id": goal.ID,
		"title":   goal.Title,
		"tasks":   len(goal.Tasks),
	})
}

// Discard handles POST /api/import/trello/:id/discard.
func (controller *TrelloImportController) Discard(c *gin.Context) {
	if err := controller.registry.Discard(c.Param("id")); err != nil {
		c.IndentedJSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"discarded": true})
}

// readImportPayload reads the export either from a multipart upload or the
// raw body.
func readImportPayload(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return c.GetRawData()
}
