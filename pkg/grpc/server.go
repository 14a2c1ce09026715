// Package grpc runs the service's gRPC listener. It carries no domain RPCs
// of its own; it exposes the standard grpc.health.v1.Health service (whose
// status follows database readiness) and server reflection, behind
// a recovering, logging and Prometheus-counting interceptor.
//
//	srv, err := grpc.Start(config.GRPCPort())
//	srv.SetServing(true)
//	defer srv.Stop()
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"github.com/shashiranjanraj/sudoku/pkg/metrics"
)

// ServiceName is the health-check service name clients ask about.
const ServiceName = "sudoku"

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sudoku",
		Subsystem: "grpc",
		Name:      "handled_total",
		Help:      "Total number of gRPC calls completed by method and code.",
	}, []string{"grpc_method", "grpc_code"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sudoku",
		Subsystem: "grpc",
		Name:      "handling_seconds",
		Help:      "Histogram of gRPC response latency in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"grpc_method"})
)

func init() {
	metrics.MustRegister(requestsTotal, requestDuration)
}

// observe is the server's only unary interceptor. A handler panic becomes
// codes.Internal; every call is logged and counted.
func observe(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
			resp, err = nil, status.Error(codes.Internal, "internal server error")
		}

		took := time.Since(start)
		code := status.Code(err).String()
		logger.Debug("grpc: call", "method", info.FullMethod, "code", code, "duration_ms", took.Milliseconds())
		requestsTotal.WithLabelValues(info.FullMethod, code).Inc()
		requestDuration.WithLabelValues(info.FullMethod).Observe(took.Seconds())
	}()
	return next(ctx, req)
}

// ─── Server ───────────────────────────────────────────────────────────────────

// Server is a running gRPC listener.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	lis    net.Listener
}

// Start listens on port (":0" style ports are allowed) and serves in the
// background. Health starts as NOT_SERVING until SetServing(true).
func Start(port string) (*Server, error) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("grpc: listen on :%s: %w", port, err)
	}
	return serve(lis), nil
}

func serve(lis net.Listener) *Server {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(observe),
		grpc.MaxRecvMsgSize(1<<20),
		grpc.MaxSendMsgSize(1<<20),
	)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	logger.Info("gRPC server starting", "addr", lis.Addr().String())
	go func() {
		if err := srv.Serve(lis); err != nil && err != grpc.ErrServerStopped {
			logger.Error("grpc: serve error", "error", err)
		}
	}()

	return &Server{srv: srv, health: hs, lis: lis}
}

// Addr is the bound listener address.
func (s *Server) Addr() net.Addr { return s.lis.Addr() }

// SetServing flips the health status of ServiceName and the server as a whole.
func (s *Server) SetServing(ok bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if ok {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, st)
	s.health.SetServingStatus("", st)
}

// Stop marks the server unhealthy and waits for in-flight RPCs.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.srv.GracefulStop()
}
