package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

type ProjectHandler struct {
	projectRepo    *repository.ProjectRepository
	departmentRepo *repository.DepartmentRepository
}

func NewProjectHandler(projectRepo *repository.ProjectRepository, departmentRepo *repository.DepartmentRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepo:    projectRepo,
		departmentRepo: departmentRepo,
	}
}

type CreateProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type ProjectResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DepartmentID *string `json:"department_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func projectResponse(project *model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
	}
	if project.DepartmentID != nil {
		departmentID := project.DepartmentID.String()
		resp.DepartmentID = &departmentID
	}
	return resp
}

// Create adds a project to the acting tenant, optionally under one of
// its departments.
func (h *ProjectHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var departmentID *uuid.UUID
	if req.DepartmentID != nil {
		id, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID format"})
			return
		}
		department, err := h.departmentRepo.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
			return
		}
		if department == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		departmentID = &id
	}

	project := &model.Project{
		TenantID:     tenantID,
		DepartmentID: departmentID,
		Name:         req.Name,
		Description:  req.Description,
	}
	if err := h.projectRepo.Create(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, projectResponse(project))
}

// GetAll lists the acting tenant's projects.
func (h *ProjectHandler) GetAll(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projects, err := h.projectRepo.GetByTenantID(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i := range projects {
		response[i] = projectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID retrieves a tenant-owned project.
func (h *ProjectHandler) GetByID(c *gin.Context) {
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
	c.JSON(http.StatusOK, projectResponse(project))
}
