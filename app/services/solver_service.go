package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/pkg/cache"
	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"github.com/shashiranjanraj/sudoku/pkg/metrics"
	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
)

// ErrSolveTimeout is returned when a solve runs past its deadline.
var ErrSolveTimeout = errors.New("solve timed out")

const cachePrefix = "sudoku:solution:"

// Solution is the outcome of one solve request.
type Solution struct {
	Puzzle   sudoku.Grid
	Solution sudoku.Grid
	Cached   bool
	Duration time.Duration
}

type SolverService struct {
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewSolverService builds a service with explicit limits. A timeout <= 0
// disables the deadline; a cacheTTL <= 0 disables caching of solutions.
func NewSolverService(timeout, cacheTTL time.Duration) *SolverService {
	return &SolverService{timeout: timeout, cacheTTL: cacheTTL}
}

// NewDefaultSolverService reads SOLVE_TIMEOUT and SOLVE_CACHE_TTL.
func NewDefaultSolverService() *SolverService {
	return NewSolverService(config.SolveTimeout(), config.SolveCacheTTL())
}

// Solve fills the open cells of g. Known puzzles are answered from the
// cache when Redis is connected.
func (s *SolverService) Solve(ctx context.Context, g sudoku.Grid) (*Solution, error) {
	log := logger.WithCtx(ctx)
	key := cachePrefix + g.String()

	if s.cacheTTL > 0 {
		var cached string
		if cache.Get(ctx, key, &cached) {
			if sol, err := sudoku.Parse(cached); err == nil && sol.Complete() {
				metrics.Solve("cached", 0)
				return &Solution{Puzzle: g, Solution: sol, Cached: true}, nil
			}
		}
	}

	solveCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	sol, err := sudoku.Solve(solveCtx, g)
	dur := time.Since(start)

	switch {
	case err == nil:
		metrics.Solve("solved", dur)
	case errors.Is(err, sudoku.ErrInvalidPuzzle):
		metrics.Solve("invalid", dur)
		return nil, err
	case errors.Is(err, sudoku.ErrUnsolvable):
		metrics.Solve("unsolvable", dur)
		log.Info("puzzle has no solution", "puzzle", g.String(), "duration_ms", dur.Milliseconds())
		return nil, err
	case errors.Is(err, context.DeadlineExceeded):
		metrics.Solve("timeout", dur)
		log.Warn("solve timed out", "puzzle", g.String(), "timeout", s.timeout.String())
		return nil, fmt.Errorf("%w after %s", ErrSolveTimeout, dur.Round(time.Millisecond))
	default:
		return nil, err
	}

	if s.cacheTTL > 0 {
		if err := cache.Set(ctx, key, sol.String(), s.cacheTTL); err != nil {
			log.Warn("solution not cached", "error", err)
		}
	}

	log.Debug("puzzle solved", "open_cells", len(g.OpenCells()), "duration_ms", dur.Milliseconds())
	return &Solution{Puzzle: g, Solution: sol, Duration: dur}, nil
}
