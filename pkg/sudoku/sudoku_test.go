package sudoku_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
)

const (
	puzzle   = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	solution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

func mustParse(t *testing.T, s string) sudoku.Grid {
	t.Helper()
	g, err := sudoku.Parse(s)
	require.NoError(t, err)
	return g
}

func TestParse(t *testing.T) {
	g := mustParse(t, puzzle)
	assert.Equal(t, 5, g[0][0])
	assert.Equal(t, 0, g[0][2])
	assert.Equal(t, 9, g[8][8])
	assert.Equal(t, puzzle, g.String())
}

func TestParseAcceptsPrettyBoards(t *testing.T) {
	g := mustParse(t, puzzle)
	again := mustParse(t, g.Pretty())
	assert.Equal(t, g, again)

	dots := strings.ReplaceAll(puzzle, "0", ".")
	assert.Equal(t, g, mustParse(t, dots))
}

func TestParseRejects(t *testing.T) {
	for name, in := range map[string]string{
		"short":  puzzle[:80],
		"long":   puzzle + "1",
		"letter": "a" + puzzle[1:],
		"empty":  "",
		"symbol": strings.Replace(puzzle, "5", "x", 1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sudoku.Parse(in)
			assert.ErrorIs(t, err, sudoku.ErrMalformedPuzzle)
		})
	}
}

func TestFromRows(t *testing.T) {
	g := mustParse(t, puzzle)
	back, err := sudoku.FromRows(g.Rows())
	require.NoError(t, err)
	assert.Equal(t, g, back)

	_, err = sudoku.FromRows(g.Rows()[:8])
	assert.ErrorIs(t, err, sudoku.ErrMalformedPuzzle)

	rows := g.Rows()
	rows[3] = rows[3][:4]
	_, err = sudoku.FromRows(rows)
	assert.ErrorIs(t, err, sudoku.ErrMalformedPuzzle)
}

func TestFromRowsRejectsOutOfRangeValues(t *testing.T) {
	for _, v := range []int{10, -3} {
		rows := mustParse(t, puzzle).Rows()
		rows[1][1] = v
		_, err := sudoku.FromRows(rows)
		assert.ErrorIs(t, err, sudoku.ErrMalformedPuzzle, "value %d", v)
		assert.ErrorContains(t, err, "row 1 col 1")
	}
}

func TestValid(t *testing.T) {
	assert.True(t, mustParse(t, puzzle).Valid())
	assert.True(t, mustParse(t, solution).Valid())
	assert.True(t, sudoku.Grid{}.Valid())

	row := mustParse(t, puzzle)
	row[0][6] = 5
	assert.False(t, row.Valid(), "duplicate in row")

	col := mustParse(t, puzzle)
	col[6][0] = 5
	assert.False(t, col.Valid(), "duplicate in column")

	box := mustParse(t, puzzle)
	box[2][2] = 5
	assert.False(t, box.Valid(), "duplicate in box")

	outOfRange := sudoku.Grid{}
	outOfRange[4][4] = 10
	assert.False(t, outOfRange.Valid())
}

func TestOpenCells(t *testing.T) {
	g := mustParse(t, puzzle)
	open := g.OpenCells()
	assert.Len(t, open, 51)
	assert.Equal(t, sudoku.Pos{Row: 0, Col: 2}, open[0])
	assert.False(t, g.Complete())
	assert.True(t, mustParse(t, solution).Complete())
}

func TestSolve(t *testing.T) {
	g := mustParse(t, puzzle)
	got, err := sudoku.Solve(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, solution, got.String())
	assert.Equal(t, puzzle, g.String(), "input must not be mutated")
}

func TestSolveEmptyBoard(t *testing.T) {
	got, err := sudoku.Solve(context.Background(), sudoku.Grid{})
	require.NoError(t, err)
	assert.True(t, got.Complete())
	assert.True(t, got.Valid())
	assert.Equal(t, "123456789", got.String()[:9])
}

func TestSolveCompleteBoardIsReturned(t *testing.T) {
	g := mustParse(t, solution)
	got, err := sudoku.Solve(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestSolveInvalid(t *testing.T) {
	g := mustParse(t, puzzle)
	g[0][2] = 5
	_, err := sudoku.Solve(context.Background(), g)
	assert.ErrorIs(t, err, sudoku.ErrInvalidPuzzle)
}

func TestSolveUnsolvable(t *testing.T) {
	var g sudoku.Grid
	copy(g[0][:], []int{1, 2, 3, 4, 5, 6, 7, 8, 0})
	g[1][8] = 9
	require.True(t, g.Valid())

	_, err := sudoku.Solve(context.Background(), g)
	assert.ErrorIs(t, err, sudoku.ErrUnsolvable)
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sudoku.Solve(ctx, mustParse(t, puzzle))
	assert.ErrorIs(t, err, context.Canceled)
}
