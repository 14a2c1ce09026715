// Package server owns the listener lifecycle: HTTP and gRPC start together,
// and both drain when the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/pkg/cache"
	"github.com/shashiranjanraj/sudoku/pkg/database"
	"github.com/shashiranjanraj/sudoku/pkg/grpc"
	"github.com/shashiranjanraj/sudoku/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Options selects where to listen. An empty GRPCPort disables gRPC.
type Options struct {
	HTTPAddr string
	GRPCPort string
}

// Boot loads configuration and connects to the database. Redis is optional:
// a failed connection is logged and the cache stays disabled.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "addr", config.RedisAddr(), "error", err)
	}
	return nil
}

// Run serves handler until ctx is cancelled, then shuts both servers down.
func Run(ctx context.Context, handler http.Handler, opts Options) error {
	lis, err := net.Listen("tcp", opts.HTTPAddr)
	if err != nil {
		return fmt.Errorf("http: listen on %s: %w", opts.HTTPAddr, err)
	}

	var rpc *grpc.Server
	if opts.GRPCPort != "" {
		if rpc, err = grpc.Start(opts.GRPCPort); err != nil {
			_ = lis.Close()
			return err
		}
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", lis.Addr().String(), "env", config.AppEnv())
		errCh <- srv.Serve(lis)
	}()
	if rpc != nil {
		rpc.SetServing(true)
	}

	select {
	case err = <-errCh:
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http: shutdown", "error", serr)
	}
	rpc.Stop()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
