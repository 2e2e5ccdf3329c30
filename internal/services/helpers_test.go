package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolmeal/internal/infra"
	"schoolmeal/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() { infra.CloseDatabase(db) })
	return db
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func seedParent(t *testing.T, db *gorm.DB, login string) *db_models.Parent {
	t.Helper()
	p := &db_models.Parent{Login: login, PasswordHash: "x"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedStudent(t *testing.T, db *gorm.DB, login string, parentID *uuid.UUID) *db_models.Student {
	t.Helper()
	s := &db_models.Student{
		Login:        login,
		PasswordHash: "x",
		Calories:     2000,
		Protein:      100,
		Fat:          67,
		Carbs:        250,
		ParentID:     parentID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedFood(t *testing.T, db *gorm.DB, name string, foodType db_models.FoodType, kcal, protein, fat, carbs float64) *db_models.FoodItem {
	t.Helper()
	f := &db_models.FoodItem{
		Name:     name,
		Type:     foodType,
		Calories: kcal,
		Protein:  protein,
		Fat:      fat,
		Carbs:    carbs,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func ptr[T any](v T) *T { return &v }

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
