package services

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
	"github.com/shashiranjanraj/sudoku/pkg/workerpool"
)

// MaxBatch caps how many puzzles one batch request may carry.
const MaxBatch = 100

// BatchResult is the outcome for one puzzle of a batch, in input order.
type BatchResult struct {
	Index    int
	Solution *Solution
	Err      error
}

// SolveBatch solves grids on up to workers goroutines. Each puzzle gets
// its own timeout; a failing puzzle does not stop the others.
func (s *SolverService) SolveBatch(ctx context.Context, grids []sudoku.Grid, workers int) []BatchResult {
	results := make([]BatchResult, len(grids))
	if len(grids) == 0 {
		return results
	}
	if workers <= 0 || workers > len(grids) {
		workers = len(grids)
	}

	pool := workerpool.New(workers)
	var wg sync.WaitGroup

	for i, g := range grids {
		i, g := i, g
		results[i].Index = i

		wg.Add(1)
		if err := pool.SubmitWait(ctx, func() {
			defer wg.Done()
			results[i].Solution, results[i].Err = s.Solve(ctx, g)
		}); err != nil {
			wg.Done()
			results[i].Err = err
		}
	}

	wg.Wait()
	pool.Shutdown()
	return results
}
