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

type StatusHandler struct {
	statusService *service.StatusService
	recorder      *audit.Recorder
}

func NewStatusHandler(statusService *service.StatusService, recorder *audit.Recorder) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		recorder:      recorder,
	}
}

type CreateStatusRequest struct {
	ProjectID    *string `json:"project_id" binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Color        string  `json:"color"`
	SortOrder    int     `json:"sort_order"`
	IsDefault    bool    `json:"is_default"`
	IsTerminal   bool    `json:"is_terminal"`
}

type UpdateStatusRequest struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	SortOrder *int    `json:"sort_order"`
	IsDefault *bool   `json:"is_default"`
}

type ReorderStatusesRequest struct {
	StatusIDs []string `json:"status_ids" binding:"required,min=1,dive,uuid"`
}

type StatusResponse struct {
	ID           string  `json:"id"`
	ProjectID    *string `json:"project_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Color        string  `json:"color,omitempty"`
	SortOrder    int     `json:"sort_order"`
	IsDefault    bool    `json:"is_default"`
	IsTerminal   bool    `json:"is_terminal"`
}

func statusResponse(status *model.TaskStatus) StatusResponse {
	resp := StatusResponse{
		ID:         status.ID.String(),
		Code:       status.Code,
		Name:       status.Name,
		Color:      status.Color,
		SortOrder:  status.SortOrder,
		IsDefault:  status.IsDefault,
		IsTerminal: status.IsTerminal,
	}
	if status.ProjectID != nil {
		projectID := status.ProjectID.String()
		resp.ProjectID = &projectID
	}
	if status.DepartmentID != nil {
		departmentID := status.DepartmentID.String()
		resp.DepartmentID = &departmentID
	}
	return resp
}

func statusListResponse(statuses []model.TaskStatus) []StatusResponse {
	response := make([]StatusResponse, len(statuses))
	for i := range statuses {
		response[i] = statusResponse(&statuses[i])
	}
	return response
}

// Create adds a status scoped to a project or a department.
func (h *StatusHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := service.CreateStatusInput{
		Code:       req.Code,
		Name:       req.Name,
		Color:      req.Color,
		SortOrder:  req.SortOrder,
		IsDefault:  req.IsDefault,
		IsTerminal: req.IsTerminal,
	}
	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		input.ProjectID = &projectID
	}
	if req.DepartmentID != nil {
		departmentID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID format"})
			return
		}
		input.DepartmentID = &departmentID
	}

	status, err := h.statusService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "status.created", "task_status", status.ID, status.Code)

	c.JSON(http.StatusCreated, statusResponse(status))
}

// ByProject resolves the statuses effective for a project, stamping out
// the default set on first contact with an empty project.
func (h *StatusHandler) ByProject(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	statuses, err := h.statusService.ResolveForProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusListResponse(statuses))
}

// Reorder persists a new ordering and returns the refreshed scope list.
func (h *StatusHandler) Reorder(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ReorderStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	orderedIDs := make([]uuid.UUID, len(req.StatusIDs))
	for i, raw := range req.StatusIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
			return
		}
		orderedIDs[i] = id
	}

	statuses, err := h.statusService.Reorder(c.Request.Context(), tenantID, orderedIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusListResponse(statuses))
}

// Update changes a status's presentation fields or promotes it to
// default.
func (h *StatusHandler) Update(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := h.statusService.Update(c.Request.Context(), tenantID, statusID, service.UpdateStatusInput{
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "status.updated", "task_status", status.ID, status.Code)

	c.JSON(http.StatusOK, statusResponse(status))
}

// Delete removes a status; the scope's default cannot be deleted.
func (h *StatusHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	if err := h.statusService.Delete(c.Request.Context(), tenantID, statusID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "status.deleted", "task_status", statusID, "")

	c.Status(http.StatusNoContent)
}
