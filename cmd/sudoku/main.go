package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/sudoku/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sudoku",
	Short:         "Sudoku solver service",
	Long:          "Stores validated sudoku cell values and solves 9x9 puzzles over HTTP, GraphQL and the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Domain
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(solveBatchCmd)
	rootCmd.AddCommand(cellCreateCmd)

	rootCmd.AddCommand(versionCmd)
}
