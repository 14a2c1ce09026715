package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/app/controllers"
	appgql "github.com/shashiranjanraj/sudoku/app/graphql"
	"github.com/shashiranjanraj/sudoku/app/repositories"
	"github.com/shashiranjanraj/sudoku/app/services"
	gql "github.com/shashiranjanraj/sudoku/pkg/graphql"
	"github.com/shashiranjanraj/sudoku/pkg/router"
)

// API returns the route registration for the JSON and GraphQL endpoints
// backed by db. db may be nil when routes are only listed.
func API(db *gorm.DB, solver *services.SolverService) (func(*router.Router), error) {
	cells := repositories.NewCellRepository(db)
	schema, err := appgql.NewSchema(cells, solver)
	if err != nil {
		return nil, err
	}

	cellController := controllers.NewCellController(cells)
	solverController := controllers.NewSolverController(solver)
	healthController := controllers.NewHealthController(db)

	return func(r *router.Router) {
		r.Get("/health", "health", healthController.Check)
		r.Handle("/graphql", "graphql", gql.Handler(schema))

		api := r.Group("/api")
		api.Get("/cells", "cells.index", cellController.Index)
		api.Post("/cells", "cells.store", cellController.Store)
		api.Get("/cells/{id}", "cells.show", cellController.Show)
		api.Post("/solve", "solve", solverController.Solve)
		api.Post("/solve/batch", "solve.batch", solverController.SolveBatch)
	}, nil
}
