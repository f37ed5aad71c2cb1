package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/service"
)

// respondServiceError maps service errors to stable HTTP responses.
// Anything outside the taxonomy becomes a generic 500 so store
// internals never leak to callers.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrDependencyNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrDepartmentNotFound),
		errors.Is(err, service.ErrStatusNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfDependency),
		errors.Is(err, service.ErrCircularDependency),
		errors.Is(err, service.ErrScopeConflict),
		errors.Is(err, service.ErrDefaultStatusInUse),
		errors.Is(err, service.ErrNoStatusIDs):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDependencyExists),
		errors.Is(err, service.ErrStatusCodeTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
