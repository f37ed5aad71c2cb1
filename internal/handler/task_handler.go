package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/audit"
	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
)

type TaskHandler struct {
	taskRepo      *repository.TaskRepository
	projectRepo   *repository.ProjectRepository
	statusService *service.StatusService
	recorder      *audit.Recorder
}

func NewTaskHandler(
	taskRepo *repository.TaskRepository,
	projectRepo *repository.ProjectRepository,
	statusService *service.StatusService,
	recorder *audit.Recorder,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		statusService: statusService,
		recorder:      recorder,
	}
}

type CreateTaskRequest struct {
	ProjectID   string  `json:"project_id" binding:"required,uuid"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	StatusCode  string  `json:"status_code"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	ParentID    *string `json:"parent_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StatusCode  string  `json:"status_code"`
	CreatedAt   string  `json:"created_at"`
}

func taskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		ProjectID:   task.ProjectID.String(),
		Title:       task.Title,
		Description: task.Description,
		StatusCode:  task.StatusCode,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
	if task.ParentID != nil {
		parentID := task.ParentID.String()
		resp.ParentID = &parentID
	}
	return resp
}

// Create adds a task to a tenant-owned project. When no status code is
// given, the project's resolved default status is used, which stamps out
// the default set for a fresh project as a side effect.
func (h *TaskHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), tenantID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent ID format"})
			return
		}
		parent, err := h.taskRepo.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parent task"})
			return
		}
		if parent == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent task not found"})
			return
		}
		parentID = &id
	}

	statusCode := req.StatusCode
	if statusCode == "" {
		statuses, err := h.statusService.ResolveForProject(c.Request.Context(), tenantID, projectID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		statusCode = statuses[0].Code
		for _, s := range statuses {
			if s.IsDefault {
				statusCode = s.Code
				break
			}
		}
	}

	task := &model.Task{
		ProjectID:   projectID,
		ParentID:    parentID,
		Title:       req.Title,
		Description: req.Description,
		StatusCode:  statusCode,
	}
	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "task.created", "task", task.ID, task.Title)

	c.JSON(http.StatusCreated, taskResponse(task))
}

// GetByID retrieves a tenant-scoped task.
func (h *TaskHandler) GetByID(c *gin.Context) {
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

	task, err := h.taskRepo.GetByID(c.Request.Context(), tenantID, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, taskResponse(task))
}

// GetByProject lists the tasks of a tenant-owned project.
func (h *TaskHandler) GetByProject(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), tenantID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	tasks, err := h.taskRepo.GetByProjectID(c.Request.Context(), tenantID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete soft-deletes a tenant-scoped task.
func (h *TaskHandler) Delete(c *gin.Context) {
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

	task, err := h.taskRepo.GetByID(c.Request.Context(), tenantID, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), tenantID, taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "task.deleted", "task", taskID, task.Title)

	c.Status(http.StatusNoContent)
}
