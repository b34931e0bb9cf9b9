package reports_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/features/school/reports/model"
	reportSeeds "schoolku_backend/internals/seeds/reports"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func TestSeedDemoFileIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openDB(t)

	first, err := reportSeeds.SeedSourceFromJSON(ctx, db, "data_school_demo.json")
	require.NoError(t, err)
	assert.EqualValues(t, 3, first["students"])
	assert.EqualValues(t, 3, first["grades"])
	assert.EqualValues(t, 4, first["attendances"])

	second, err := reportSeeds.SeedSourceFromJSON(ctx, db, "data_school_demo.json")
	require.NoError(t, err)
	for table, n := range second {
		assert.Zero(t, n, table)
	}

	var students int64
	require.NoError(t, db.Model(&model.StudentModel{}).Count(&students).Error)
	assert.EqualValues(t, 3, students)
}

func TestSeedMissingFile(t *testing.T) {
	t.Parallel()

	_, err := reportSeeds.SeedSourceFromJSON(context.Background(), openDB(t), "nope.json")
	require.Error(t, err)
}
