package orm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/orm"
)

type note struct {
	ID   uint
	Body string
}

func seeded(t *testing.T, n int) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))
	for i := 0; i < n; i++ {
		require.NoError(t, orm.New(db).Create(&note{Body: "n"}))
	}
	return db
}

func TestGetWithPagination(t *testing.T) {
	db := seeded(t, 7)

	var page []note
	p, err := orm.New(db).Model(&note{}).Order("id").GetWithPagination(&page, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, orm.Pagination{Page: 2, Limit: 3, Total: 7, TotalPages: 3}, p)
	require.Len(t, page, 3)
	assert.EqualValues(t, 4, page[0].ID)
}

func TestGetWithPaginationClamps(t *testing.T) {
	db := seeded(t, 2)

	var page []note
	p, err := orm.New(db).Model(&note{}).GetWithPagination(&page, -1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, orm.MaxLimit, p.Limit)

	p, err = orm.New(db).Model(&note{}).GetWithPagination(&page, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, orm.DefaultLimit, p.Limit)
}

func TestFirstAndRememberWithoutCache(t *testing.T) {
	db := seeded(t, 1)
	q := orm.New(db).WithContext(context.Background())

	var n note
	require.NoError(t, q.Where("id = ?", 1).Remember("notes:1", time.Minute, &n))
	assert.Equal(t, "n", n.Body)

	err := q.Where("id = ?", 2).First(&note{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := q.Model(&note{}).Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
