package docs

import "github.com/swaggo/swag"

// @title           Taskdeck API
// @version         1.0
// @description     Multi-tenant task and project management API: task dependencies, status scoping, and sprint templates.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Dependencies
// @tag.description Task dependency graph operations

// @tag.name Statuses
// @tag.description Task status scoping operations

// @tag.name Sprints
// @tag.description Sprint template operations

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Projects
// @tag.description Project management operations

// @tag.name Departments
// @tag.description Department management operations

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
