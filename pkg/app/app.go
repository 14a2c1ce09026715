// Package app assembles the HTTP handler for the sudoku service and hands
// it to internal/server.
//
//	routes, _ := routes.API(database.DB, services.NewDefaultSolverService())
//	err := app.New().Routes(routes).Serve(ctx)
package app

import (
	"context"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/internal/server"
	"github.com/shashiranjanraj/sudoku/pkg/router"
)

// Application collects route registrations and builds the kernel from them.
type Application struct {
	routesFns []func(*router.Router)
}

func New() *Application {
	return &Application{}
}

// Routes adds a route-registration callback. Callbacks run in order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Router builds a bare router with every registered route and no global
// middleware, as used by route:list.
func (a *Application) Router() *router.Router {
	r := router.New()
	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}

// Serve runs the HTTP and gRPC listeners on the configured ports until ctx
// is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	return server.Run(ctx, a.Handler(), server.Options{
		HTTPAddr: ":" + config.AppPort(),
		GRPCPort: config.GRPCPort(),
	})
}
