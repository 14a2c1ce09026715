package app

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/pkg/metrics"
	"github.com/shashiranjanraj/sudoku/pkg/middleware"
	"github.com/shashiranjanraj/sudoku/pkg/reqid"
	"github.com/shashiranjanraj/sudoku/pkg/router"
)

const defaultRateLimit = 200 // requests per client per minute

// Handler builds the HTTP kernel. Global middleware, outermost first:
//
//  1. metrics, so latency covers the whole stack
//  2. recovery
//  3. request id, before anything logs
//  4. access log
//  5. CORS
//  6. rate limit
func (a *Application) Handler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.Int("RATE_LIMIT", defaultRateLimit), time.Minute))

	r.Handle("/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler()
}
