package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/audit"
	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/service"
)

type DependencyHandler struct {
	dependencyService *service.DependencyService
	recorder          *audit.Recorder
}

func NewDependencyHandler(dependencyService *service.DependencyService, recorder *audit.Recorder) *DependencyHandler {
	return &DependencyHandler{
		dependencyService: dependencyService,
		recorder:          recorder,
	}
}

type CreateDependencyRequest struct {
	DependsOnID string `json:"depends_on_id" binding:"required,uuid"`
}

type DependencyResponse struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	DependsOnID string `json:"depends_on_id"`
	CreatedAt   string `json:"created_at"`
}

func dependencyResponse(dep *model.TaskDependency) DependencyResponse {
	return DependencyResponse{
		ID:          dep.ID.String(),
		TaskID:      dep.TaskID.String(),
		DependsOnID: dep.DependsOnID.String(),
		CreatedAt:   dep.CreatedAt.Format(http.TimeFormat),
	}
}

// Create adds a depends-on edge from the task in the URL to the task in
// the body.
func (h *DependencyHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req CreateDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	dependsOnID, err := uuid.Parse(req.DependsOnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid depends_on ID format"})
		return
	}

	dep, err := h.dependencyService.Add(c.Request.Context(), tenantID, taskID, dependsOnID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "dependency.created", "task_dependency", dep.ID, dep.TaskID.String()+" depends on "+dep.DependsOnID.String())

	c.JSON(http.StatusCreated, dependencyResponse(dep))
}

// List returns the dependencies of the task in the URL.
func (h *DependencyHandler) List(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	deps, err := h.dependencyService.ListForTask(c.Request.Context(), tenantID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]DependencyResponse, len(deps))
	for i := range deps {
		response[i] = dependencyResponse(&deps[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a dependency edge.
func (h *DependencyHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	dependencyID, err := uuid.Parse(c.Param("dependency_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dependency ID format"})
		return
	}

	if err := h.dependencyService.Remove(c.Request.Context(), tenantID, dependencyID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "dependency.deleted", "task_dependency", dependencyID, "")

	c.Status(http.StatusNoContent)
}
