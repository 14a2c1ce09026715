package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/shashiranjanraj/sudoku/app/services"
	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"github.com/shashiranjanraj/sudoku/pkg/response"
	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
	"github.com/shashiranjanraj/sudoku/pkg/validate"
)

type SolverController struct {
	solver *services.SolverService
}

func NewSolverController(solver *services.SolverService) *SolverController {
	return &SolverController{solver: solver}
}

// solveRequest carries a board either as an 81-character string or as
// nine rows of nine loosely-typed cells. puzzle wins when both are set.
type solveRequest struct {
	Puzzle string  `json:"puzzle"`
	Rows   [][]any `json:"rows"`
}

type solveResponse struct {
	Puzzle     string  `json:"puzzle"`
	Solution   string  `json:"solution"`
	Rows       [][]int `json:"rows"`
	Cached     bool    `json:"cached"`
	DurationMS int64   `json:"duration_ms"`
}

// Solve handles POST /api/solve.
func (c *SolverController) Solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		grid sudoku.Grid
		err  error
	)
	switch {
	case req.Puzzle != "":
		grid, err = sudoku.Parse(req.Puzzle)
	case req.Rows != nil:
		grid, err = services.ParseRows(req.Rows)
	default:
		response.ValidationError(w, map[string]string{"puzzle": "The puzzle field is required."})
		return
	}
	if err != nil {
		writeSolveError(w, r, err)
		return
	}

	sol, err := c.solver.Solve(r.Context(), grid)
	if err != nil {
		writeSolveError(w, r, err)
		return
	}

	response.Success(w, solveResponse{
		Puzzle:     sol.Puzzle.String(),
		Solution:   sol.Solution.String(),
		Rows:       sol.Solution.Rows(),
		Cached:     sol.Cached,
		DurationMS: sol.Duration.Milliseconds(),
	})
}

func writeSolveError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, sudoku.ErrMalformedPuzzle):
		response.ValidationError(w, map[string]string{"puzzle": err.Error()})
	case errors.Is(err, sudoku.ErrInvalidPuzzle):
		response.Error(w, http.StatusUnprocessableEntity, "Invalid Sudoku puzzle. Please try again.")
	case errors.Is(err, sudoku.ErrUnsolvable):
		response.Error(w, http.StatusUnprocessableEntity, "Puzzle has no solution.")
	case errors.Is(err, services.ErrSolveTimeout):
		response.Error(w, http.StatusServiceUnavailable, "Puzzle took too long to solve.")
	default:
		logger.WithCtx(r.Context()).Error("solve", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not solve puzzle")
	}
}

type batchRequest struct {
	Puzzles []string `json:"puzzles" validate:"required"`
}

type batchItem struct {
	Index    int    `json:"index"`
	Solution string `json:"solution,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SolveBatch handles POST /api/solve/batch. Puzzles are solved
// concurrently; each item reports its own solution or error.
func (c *SolverController) SolveBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Puzzles) > services.MaxBatch {
		response.ValidationError(w, map[string]string{
			"puzzles": fmt.Sprintf("The puzzles may not have more than %d items.", services.MaxBatch),
		})
		return
	}

	grids := make([]sudoku.Grid, len(req.Puzzles))
	errs := make(map[string]string)
	for i, p := range req.Puzzles {
		g, err := sudoku.Parse(p)
		if err != nil {
			errs[fmt.Sprintf("puzzles.%d", i)] = err.Error()
			continue
		}
		grids[i] = g
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	results := c.solver.SolveBatch(r.Context(), grids, runtime.GOMAXPROCS(0))
	items := make([]batchItem, len(results))
	for i, res := range results {
		items[i] = batchItem{Index: res.Index}
		if res.Err != nil {
			items[i].Error = res.Err.Error()
			continue
		}
		items[i].Solution = res.Solution.Solution.String()
		items[i].Cached = res.Solution.Cached
	}

	response.Success(w, items)
}
