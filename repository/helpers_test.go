package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/meinhoongagan/servicehub/db"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(sqlite.Open(":memory:"), gormlogger.Silent)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func mustCreate(t *testing.T, gdb *gorm.DB, v interface{}) {
	t.Helper()
	require.NoError(t, gdb.WithContext(context.Background()).Create(v).Error)
}

func newUser(t *testing.T, gdb *gorm.DB, name, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Phone: "0123456789", Role: role}
	mustCreate(t, gdb, u)
	return u
}
