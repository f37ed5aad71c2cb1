package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/audit"
	"taskdeck/internal/handler"
	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// End-to-end over httptest: real handler, real service, in-memory
// database. The auth middleware is replaced by a stub that injects the
// tenant directly.
func setupDependencyRouter(t *testing.T, tenantID uuid.UUID) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	taskRepo := repository.NewTaskRepository(db)
	dependencyRepo := repository.NewDependencyRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	dependencyService := service.NewDependencyService(taskRepo, dependencyRepo)
	h := handler.NewDependencyHandler(dependencyService, audit.NewRecorder(activityRepo))

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, tenantID)
		c.Next()
	})
	r.POST("/tasks/:id/dependencies", h.Create)
	r.GET("/tasks/:id/dependencies", h.List)
	r.DELETE("/tasks/:id/dependencies/:dependency_id", h.Delete)

	return r, db
}

func seedTaskChain(t *testing.T, db *gorm.DB, tenantID uuid.UUID, n int) []*model.Task {
	t.Helper()

	tenant := &model.Tenant{ID: tenantID, Name: "acme"}
	require.NoError(t, db.Create(tenant).Error)
	project := &model.Project{TenantID: tenantID, Name: "Test Project"}
	require.NoError(t, db.Create(project).Error)

	tasks := make([]*model.Task, n)
	for i := range tasks {
		tasks[i] = &model.Task{ProjectID: project.ID, Title: fmt.Sprintf("task %d", i+1), StatusCode: model.StatusTodo}
		require.NoError(t, db.Create(tasks[i]).Error)
	}
	return tasks
}

func postDependency(router *gin.Engine, taskID, dependsOnID uuid.UUID) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"depends_on_id": dependsOnID.String()})
	req, _ := http.NewRequest("POST", "/tasks/"+taskID.String()+"/dependencies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDependencyHandler_CycleIsRejected(t *testing.T) {
	tenantID := uuid.New()
	router, db := setupDependencyRouter(t, tenantID)
	tasks := seedTaskChain(t, db, tenantID, 3)

	// 1 -> 2 and 2 -> 3 go through
	resp := postDependency(router, tasks[0].ID, tasks[1].ID)
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = postDependency(router, tasks[1].ID, tasks[2].ID)
	assert.Equal(t, http.StatusCreated, resp.Code)

	// 3 -> 1 would close the loop
	resp = postDependency(router, tasks[2].ID, tasks[0].ID)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "circular")

	// Mutations record to the activity log
	var count int64
	require.NoError(t, db.Model(&model.ActivityLog{}).Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDependencyHandler_Duplicate(t *testing.T) {
	tenantID := uuid.New()
	router, db := setupDependencyRouter(t, tenantID)
	tasks := seedTaskChain(t, db, tenantID, 2)

	resp := postDependency(router, tasks[0].ID, tasks[1].ID)
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = postDependency(router, tasks[0].ID, tasks[1].ID)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestDependencyHandler_UnknownTask(t *testing.T) {
	tenantID := uuid.New()
	router, db := setupDependencyRouter(t, tenantID)
	tasks := seedTaskChain(t, db, tenantID, 1)

	resp := postDependency(router, tasks[0].ID, uuid.New())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDependencyHandler_InvalidIDs(t *testing.T) {
	tenantID := uuid.New()
	router, _ := setupDependencyRouter(t, tenantID)

	// Malformed task id in the URL
	body, _ := json.Marshal(gin.H{"depends_on_id": uuid.New().String()})
	req, _ := http.NewRequest("POST", "/tasks/not-a-uuid/dependencies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Malformed depends_on_id in the body
	body, _ = json.Marshal(gin.H{"depends_on_id": "not-a-uuid"})
	req, _ = http.NewRequest("POST", "/tasks/"+uuid.New().String()+"/dependencies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDependencyHandler_ListAndDelete(t *testing.T) {
	tenantID := uuid.New()
	router, db := setupDependencyRouter(t, tenantID)
	tasks := seedTaskChain(t, db, tenantID, 2)

	resp := postDependency(router, tasks[0].ID, tasks[1].ID)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created handler.DependencyResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, tasks[0].ID.String(), created.TaskID)
	assert.Equal(t, tasks[1].ID.String(), created.DependsOnID)

	req, _ := http.NewRequest("GET", "/tasks/"+tasks[0].ID.String()+"/dependencies", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	var listed []handler.DependencyResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	req, _ = http.NewRequest("DELETE", "/tasks/"+tasks[0].ID.String()+"/dependencies/"+created.ID, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	req, _ = http.NewRequest("GET", "/tasks/"+tasks[0].ID.String()+"/dependencies", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "[]", resp.Body.String())
}
