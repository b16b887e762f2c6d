package items

import (
	"context"
	"fmt"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"itemtrail/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Item{}))
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestCreateAssignsIDAndPersists(t *testing.T) {
	repo := NewRepository(newTestDB(t), log.Default())

	item, err := repo.Create(context.Background(), "hello world")
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "hello world", item.Name)
	assert.False(t, item.CreatedAt.IsZero())

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, item.ID, got[0].ID)
	assert.Equal(t, "hello world", got[0].Name)
}

func TestListEmpty(t *testing.T) {
	repo := NewRepository(newTestDB(t), log.Default())

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateMultiple(t *testing.T) {
	repo := NewRepository(newTestDB(t), log.Default())

	first, err := repo.Create(context.Background(), "first")
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), "second")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
