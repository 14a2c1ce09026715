package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sudoku/app/routes"
	"github.com/shashiranjanraj/sudoku/app/services"
	_ "github.com/shashiranjanraj/sudoku/database/migrations"
	"github.com/shashiranjanraj/sudoku/pkg/app"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/migration"
	"github.com/shashiranjanraj/sudoku/pkg/testkit"
)

func handler(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = migration.New(db).Run(context.Background())
	require.NoError(t, err)

	api, err := routes.API(db, services.NewSolverService(5*time.Second, 0))
	require.NoError(t, err)
	return app.New().Routes(api).Handler()
}

func TestCellScenarios(t *testing.T) {
	testkit.RunFile(t, handler(t), "testdata/cells.json")
}

func TestSolveScenarios(t *testing.T) {
	testkit.RunFile(t, handler(t), "testdata/solve.json")
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	handler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"database":"up","cache":"disabled"}}`, rec.Body.String())
}

func TestHealthWithoutDatabase(t *testing.T) {
	api, err := routes.API(nil, services.NewSolverService(0, 0))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.New().Routes(api).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
