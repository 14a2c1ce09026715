package main

import (
	"fmt"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/sudoku/database/migrations"
)

var version = semver.Version{Minor: 1, Build: semver.Commit()}

// sudoku version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version and the newest bundled migration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sudoku %s (schema %s)\n", version.String(), migrations.CreateCellsName)
	},
}
