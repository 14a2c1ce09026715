package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/sudoku/app/routes"
	"github.com/shashiranjanraj/sudoku/app/services"
	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/internal/server"
	"github.com/shashiranjanraj/sudoku/pkg/app"
	"github.com/shashiranjanraj/sudoku/pkg/cache"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"github.com/shashiranjanraj/sudoku/pkg/migration"
)

var serveMigrate bool

// sudoku serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := server.Boot(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		defer cache.Close()    //nolint:errcheck
		logger.Info("sudoku starting", "version", version.String(), "env", config.AppEnv())

		runner := migration.New(database.DB)
		if serveMigrate {
			applied, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			logger.Info("migrations applied", "count", len(applied))
		} else if pending, err := runner.Pending(ctx); err == nil && len(pending) > 0 {
			logger.Warn("pending migrations; run `sudoku migrate`", "pending", pending)
		}

		api, err := routes.API(database.DB, services.NewDefaultSolverService())
		if err != nil {
			return err
		}
		return app.New().Routes(api).Serve(ctx)
	},
}

// sudoku route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := routes.API(nil, services.NewSolverService(0, 0))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range app.New().Routes(api).Router().Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "run pending migrations before serving")
}
