package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/app/models"
	"github.com/shashiranjanraj/sudoku/app/repositories"
	_ "github.com/shashiranjanraj/sudoku/database/migrations"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/migration"
	"github.com/shashiranjanraj/sudoku/pkg/validate"
)

func migratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = migration.New(db).Run(context.Background())
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Cell{}).Count(&n).Error)
	return n
}

func TestCreateStoresEveryValidValue(t *testing.T) {
	ctx := context.Background()
	db := migratedDB(t)
	repo := repositories.NewCellRepository(db)

	for v := 1; v <= 9; v++ {
		cell, err := repo.Create(ctx, v)
		require.NoError(t, err)
		assert.NotZero(t, cell.ID)

		stored, err := repo.FindByID(ctx, cell.ID)
		require.NoError(t, err)
		assert.Equal(t, v, stored.InputValue)
	}
	assert.EqualValues(t, 9, count(t, db))
}

func TestCreateRejectsWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	db := migratedDB(t)
	repo := repositories.NewCellRepository(db)

	for _, raw := range []any{0, 10, -5, "abc", nil} {
		cell, err := repo.Create(ctx, raw)
		assert.Nil(t, cell)

		var verr *validate.ValidationError
		assert.ErrorAs(t, err, &verr, "input %v", raw)
	}
	assert.Zero(t, count(t, db))
}

func TestSameValueGetsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCellRepository(migratedDB(t))

	a, err := repo.Create(ctx, 5)
	require.NoError(t, err)
	b, err := repo.Create(ctx, 5)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID, b.ID)
}

func TestFindByIDNotFound(t *testing.T) {
	_, err := repositories.NewCellRepository(migratedDB(t)).FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, repositories.ErrCellNotFound)
}

func TestAllPaginates(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewCellRepository(migratedDB(t))
	for _, v := range []int{3, 1, 4, 1, 5} {
		_, err := repo.Create(ctx, v)
		require.NoError(t, err)
	}

	cells, page, err := repo.All(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, 4, cells[0].InputValue)
	assert.Equal(t, 1, cells[1].InputValue)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}
