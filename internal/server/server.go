package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskdeck/internal/audit"
	"taskdeck/internal/config"
	"taskdeck/internal/database"
	"taskdeck/internal/handler"
	"taskdeck/internal/middleware"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		return nil, err
	}

	r := gin.Default()

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	dependencyRepo := repository.NewDependencyRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	templateRepo := repository.NewSprintTemplateRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize core services and the audit sink
	recorder := audit.NewRecorder(activityRepo)
	dependencyService := service.NewDependencyService(taskRepo, dependencyRepo)
	statusService := service.NewStatusService(statusRepo, projectRepo, departmentRepo)
	sprintService := service.NewSprintService(sprintRepo, templateRepo, projectRepo, departmentRepo)

	// Initialize handlers
	dependencyHandler := handler.NewDependencyHandler(dependencyService, recorder)
	statusHandler := handler.NewStatusHandler(statusService, recorder)
	sprintHandler := handler.NewSprintHandler(sprintService, recorder)
	taskHandler := handler.NewTaskHandler(taskRepo, projectRepo, statusService, recorder)
	projectHandler := handler.NewProjectHandler(projectRepo, departmentRepo)
	departmentHandler := handler.NewDepartmentHandler(departmentRepo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// All API routes require a resolved tenant
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Task dependency routes
		authorized.POST("/tasks/:id/dependencies", dependencyHandler.Create)
		authorized.GET("/tasks/:id/dependencies", dependencyHandler.List)
		authorized.DELETE("/tasks/:id/dependencies/:dependency_id", dependencyHandler.Delete)

		// Task status routes
		authorized.POST("/task-statuses", statusHandler.Create)
		authorized.GET("/task-statuses/by-project", statusHandler.ByProject)
		authorized.POST("/task-statuses/reorder", statusHandler.Reorder)
		authorized.PUT("/task-statuses/:id", statusHandler.Update)
		authorized.DELETE("/task-statuses/:id", statusHandler.Delete)

		// Sprint routes
		authorized.POST("/projects/:id/sprints/from-template", sprintHandler.CreateFromTemplate)
		authorized.POST("/sprint-templates", sprintHandler.CreateTemplate)
		authorized.PUT("/sprint-templates/:id/default", sprintHandler.SetDefaultTemplate)
		authorized.GET("/departments/:id/sprint-templates", sprintHandler.ListTemplates)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.GET("/projects/:id/tasks", taskHandler.GetByProject)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)

		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)

		// Department routes
		authorized.POST("/departments", departmentHandler.Create)
		authorized.GET("/departments", departmentHandler.GetAll)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
