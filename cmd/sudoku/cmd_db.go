package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/database/seeders"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// withDB adapts fn into a RunE that holds a database connection for the
// duration of the command.
func withDB(fn func(ctx context.Context, db *gorm.DB, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		return fn(cmd.Context(), database.DB, cmd.OutOrStdout())
	}
}

// report prints one line per migration name, or idle when there are none.
// err is returned as is so partial progress is still shown.
func report(out io.Writer, verb, idle string, names []string, err error) error {
	for _, name := range names {
		fmt.Fprintf(out, "%-13s %s\n", verb+":", name)
	}
	if err == nil && len(names) == 0 {
		fmt.Fprintln(out, idle)
	}
	return err
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: withDB(func(ctx context.Context, db *gorm.DB, out io.Writer) error {
		applied, err := migration.New(db).Run(ctx)
		return report(out, "Migrated", "Nothing to migrate.", applied, err)
	}),
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: withDB(func(ctx context.Context, db *gorm.DB, out io.Writer) error {
		rolled, err := migration.New(db).Rollback(ctx)
		return report(out, "Rolled back", "Nothing to roll back.", rolled, err)
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: withDB(func(ctx context.Context, db *gorm.DB, out io.Writer) error {
		statuses, err := migration.New(db).Status(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RAN?\tMIGRATION\tBATCH")
		for _, s := range statuses {
			if s.Ran {
				fmt.Fprintf(w, "Yes\t%s\t%d\n", s.Name, s.Batch)
			} else {
				fmt.Fprintf(w, "No\t%s\t-\n", s.Name)
			}
		}
		return w.Flush()
	}),
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE:  withDB(seeders.RunAll),
}
