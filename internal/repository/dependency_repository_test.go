package repository_test

import (
	"context"
	"testing"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
	"taskdeck/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Tenant scoping on edges goes through two joins (edge -> task ->
// project), so these run against a real in-memory database rather than
// sqlmock.
func seedEdge(t *testing.T, db *gorm.DB) (tenantID uuid.UUID, edge *model.TaskDependency) {
	t.Helper()

	tenant := &model.Tenant{Name: "acme"}
	require.NoError(t, db.Create(tenant).Error)
	project := &model.Project{TenantID: tenant.ID, Name: "Test Project"}
	require.NoError(t, db.Create(project).Error)
	task := &model.Task{ProjectID: project.ID, Title: "one", StatusCode: model.StatusTodo}
	require.NoError(t, db.Create(task).Error)
	dependsOn := &model.Task{ProjectID: project.ID, Title: "two", StatusCode: model.StatusTodo}
	require.NoError(t, db.Create(dependsOn).Error)

	edge = &model.TaskDependency{TaskID: task.ID, DependsOnID: dependsOn.ID}
	require.NoError(t, db.Create(edge).Error)

	return tenant.ID, edge
}

func TestDependencyRepository_GetByID(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	repo := repository.NewDependencyRepository(db)
	tenantID, edge := seedEdge(t, db)

	ctx := context.Background()

	found, err := repo.GetByID(ctx, tenantID, edge.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, edge.TaskID, found.TaskID)
	assert.Equal(t, edge.DependsOnID, found.DependsOnID)

	// A foreign tenant sees nothing, without an error.
	found, err = repo.GetByID(ctx, uuid.New(), edge.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestDependencyRepository_GetAllForTenant(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	repo := repository.NewDependencyRepository(db)
	tenantID, edge := seedEdge(t, db)
	otherTenantID, _ := seedEdge(t, db)

	ctx := context.Background()

	deps, err := repo.GetAllForTenant(ctx, tenantID)
	assert.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, edge.ID, deps[0].ID)

	deps, err = repo.GetAllForTenant(ctx, otherTenantID)
	assert.NoError(t, err)
	assert.Len(t, deps, 1)
	assert.NotEqual(t, edge.ID, deps[0].ID)
}

func TestDependencyRepository_Exists(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	repo := repository.NewDependencyRepository(db)
	_, edge := seedEdge(t, db)

	ctx := context.Background()

	exists, err := repo.Exists(ctx, edge.TaskID, edge.DependsOnID)
	assert.NoError(t, err)
	assert.True(t, exists)

	// The reverse direction is a distinct edge.
	exists, err = repo.Exists(ctx, edge.DependsOnID, edge.TaskID)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestDependencyRepository_Delete_CrossTenant(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	repo := repository.NewDependencyRepository(db)
	tenantID, edge := seedEdge(t, db)

	ctx := context.Background()

	err = repo.Delete(ctx, uuid.New(), edge.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, repo.Delete(ctx, tenantID, edge.ID))

	deps, err := repo.GetAllForTenant(ctx, tenantID)
	assert.NoError(t, err)
	assert.Empty(t, deps)
}
