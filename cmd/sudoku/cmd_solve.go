package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/sudoku/app/repositories"
	"github.com/shashiranjanraj/sudoku/app/services"
	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
)

var (
	solveTimeout time.Duration
	solveCompact bool
	batchWorkers int
)

// sudoku solve <puzzle>
var solveCmd = &cobra.Command{
	Use:   "solve <puzzle>",
	Short: "Solve a puzzle given as 81 cells (0, . or _ for blanks)",
	Example: `  sudoku solve 530070000600195000098000060800060003400803001700020006060000280000419005000080079
  sudoku solve --compact "53..7.... 6..195... .98....6. 8...6...3 4..8.3..1 7...2...6 .6....28. ...419..5 ....8..79"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := sudoku.Parse(strings.Join(args, ""))
		if err != nil {
			return err
		}

		timeout := solveTimeout
		if timeout <= 0 {
			timeout = config.SolveTimeout()
		}
		sol, err := services.NewSolverService(timeout, 0).Solve(cmd.Context(), g)
		if err != nil {
			return err
		}

		if solveCompact {
			fmt.Fprintln(cmd.OutOrStdout(), sol.Solution.String())
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), sol.Solution.Pretty())
		return nil
	},
}

// sudoku solve:batch <file>
var solveBatchCmd = &cobra.Command{
	Use:   "solve:batch <file>",
	Short: "Solve one puzzle per line of file ('-' for stdin); # starts a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var grids []sudoku.Grid
		scanner := bufio.NewScanner(in)
		for line := 1; scanner.Scan(); line++ {
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			g, err := sudoku.Parse(text)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			grids = append(grids, g)
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		timeout := solveTimeout
		if timeout <= 0 {
			timeout = config.SolveTimeout()
		}
		results := services.NewSolverService(timeout, 0).SolveBatch(cmd.Context(), grids, batchWorkers)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%d\terror: %v\n", r.Index+1, r.Err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.Index+1, r.Solution.Solution.String())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d puzzles failed", failed, len(results))
		}
		return nil
	},
}

// sudoku cell:create <value>
var cellCreateCmd = &cobra.Command{
	Use:   "cell:create <value>",
	Short: "Validate and store one cell value (1-9)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck

		cell, err := repositories.NewCellRepository(database.DB).Create(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created cell %d (input_value=%d)\n", cell.ID, cell.InputValue)
		return nil
	},
}

func init() {
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "give up after this long (default SOLVE_TIMEOUT)")
	solveCmd.Flags().BoolVar(&solveCompact, "compact", false, "print the solution as one 81-character line")
	solveBatchCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "per-puzzle limit (default SOLVE_TIMEOUT)")
	solveBatchCmd.Flags().IntVar(&batchWorkers, "workers", runtime.GOMAXPROCS(0), "puzzles solved concurrently")
}
