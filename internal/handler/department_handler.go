package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

type DepartmentHandler struct {
	departmentRepo *repository.DepartmentRepository
}

func NewDepartmentHandler(departmentRepo *repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departmentRepo: departmentRepo}
}

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Create adds a department to the acting tenant.
func (h *DepartmentHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	department := &model.Department{
		TenantID: tenantID,
		Name:     req.Name,
	}
	if err := h.departmentRepo.Create(c.Request.Context(), department); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, DepartmentResponse{
		ID:   department.ID.String(),
		Name: department.Name,
	})
}

// GetAll lists the acting tenant's departments.
func (h *DepartmentHandler) GetAll(c *gin.Context) {
	tenantID, ok := middleware.RequireTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	departments, err := h.departmentRepo.GetByTenantID(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve departments"})
		return
	}

	response := make([]DepartmentResponse, len(departments))
	for i, department := range departments {
		response[i] = DepartmentResponse{
			ID:   department.ID.String(),
			Name: department.Name,
		}
	}
	c.JSON(http.StatusOK, response)
}
