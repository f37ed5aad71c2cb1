package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/audit"
	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/service"
)

type SprintHandler struct {
	sprintService *service.SprintService
	recorder      *audit.Recorder
}

func NewSprintHandler(sprintService *service.SprintService, recorder *audit.Recorder) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		recorder:      recorder,
	}
}

type CreateSprintFromTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required,uuid"`
}

type CreateSprintTemplateRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	NamePattern  string `json:"name_pattern"`
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
	IsDefault    bool   `json:"is_default"`
}

type SprintResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type SprintTemplateResponse struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	NamePattern  string `json:"name_pattern,omitempty"`
	DurationDays int    `json:"duration_days"`
	IsDefault    bool   `json:"is_default"`
}

func sprintTemplateResponse(template *model.SprintTemplate) SprintTemplateResponse {
	return SprintTemplateResponse{
		ID:           template.ID.String(),
		DepartmentID: template.DepartmentID.String(),
		NamePattern:  template.NamePattern,
		DurationDays: template.DurationDays,
		IsDefault:    template.IsDefault,
	}
}

// CreateFromTemplate stamps a sprint out of a template for the project
// in the URL.
func (h *SprintHandler) CreateFromTemplate(c *gin.Context) {
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

	var req CreateSprintFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID format"})
		return
	}

	sprint, err := h.sprintService.CreateFromTemplate(c.Request.Context(), tenantID, projectID, templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "sprint.created", "sprint", sprint.ID, sprint.Name)

	c.JSON(http.StatusCreated, SprintResponse{
		ID:        sprint.ID.String(),
		ProjectID: sprint.ProjectID.String(),
		Name:      sprint.Name,
		StartDate: sprint.StartDate.Format(time.RFC3339),
		EndDate:   sprint.EndDate.Format(time.RFC3339),
	})
}

// CreateTemplate adds a sprint template to a department.
func (h *SprintHandler) CreateTemplate(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateSprintTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID format"})
		return
	}

	template, err := h.sprintService.CreateTemplate(c.Request.Context(), tenantID, service.CreateTemplateInput{
		DepartmentID: departmentID,
		NamePattern:  req.NamePattern,
		DurationDays: req.DurationDays,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "sprint_template.created", "sprint_template", template.ID, template.NamePattern)

	c.JSON(http.StatusCreated, sprintTemplateResponse(template))
}

// SetDefaultTemplate promotes the template in the URL to its
// department's default.
func (h *SprintHandler) SetDefaultTemplate(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID format"})
		return
	}

	template, err := h.sprintService.SetDefaultTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.recorder.Record(c.Request.Context(), tenantID, "sprint_template.default_set", "sprint_template", template.ID, template.NamePattern)

	c.JSON(http.StatusOK, sprintTemplateResponse(template))
}

// ListTemplates returns the templates of the department in the URL.
func (h *SprintHandler) ListTemplates(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID format"})
		return
	}

	templates, err := h.sprintService.ListTemplates(c.Request.Context(), tenantID, departmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]SprintTemplateResponse, len(templates))
	for i := range templates {
		response[i] = sprintTemplateResponse(&templates[i])
	}
	c.JSON(http.StatusOK, response)
}
