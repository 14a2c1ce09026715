package graphql_test

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgql "github.com/shashiranjanraj/sudoku/app/graphql"
	"github.com/shashiranjanraj/sudoku/app/repositories"
	"github.com/shashiranjanraj/sudoku/app/services"
	_ "github.com/shashiranjanraj/sudoku/database/migrations"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/migration"
)

func schema(t *testing.T) graphql.Schema {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	_, err = migration.New(db).Run(context.Background())
	require.NoError(t, err)

	s, err := appgql.NewSchema(repositories.NewCellRepository(db), services.NewSolverService(time.Second, 0))
	require.NoError(t, err)
	return s
}

func do(s graphql.Schema, query string) *graphql.Result {
	return graphql.Do(graphql.Params{Schema: s, RequestString: query, Context: context.Background()})
}

func TestCreateAndReadCells(t *testing.T) {
	s := schema(t)

	res := do(s, `mutation { createCell(input_value: 7) { id input_value } }`)
	require.Empty(t, res.Errors)
	created := res.Data.(map[string]interface{})["createCell"].(map[string]interface{})
	assert.Equal(t, 7, created["input_value"])

	res = do(s, `{ cell(id: 1) { input_value } cells { id } }`)
	require.Empty(t, res.Errors)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, 7, data["cell"].(map[string]interface{})["input_value"])
	assert.Len(t, data["cells"], 1)
}

func TestCreateCellOutOfRange(t *testing.T) {
	res := do(schema(t), `mutation { createCell(input_value: 10) { id } }`)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "input_value")
}

func TestSolveQuery(t *testing.T) {
	res := do(schema(t), `{ solve(puzzle: "530070000600195000098000060800060003400803001700020006060000280000419005000080079") { solution cached } }`)
	require.Empty(t, res.Errors)
	sol := res.Data.(map[string]interface{})["solve"].(map[string]interface{})
	assert.Equal(t, "534678912672195348198342567859761423426853791713924856961537284287419635345286179", sol["solution"])
	assert.Equal(t, false, sol["cached"])
}
