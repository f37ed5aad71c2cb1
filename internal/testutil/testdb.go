package testutil

import (
	"taskdeck/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.Tenant{},
		&model.Department{},
		&model.Project{},
		&model.Task{},
		&model.TaskDependency{},
		&model.TaskStatus{},
		&model.SprintTemplate{},
		&model.Sprint{},
		&model.ActivityLog{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
