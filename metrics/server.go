package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/distributedio/respd/conf"
)

const (
	// MetricsPath serves the prometheus exposition of the respd collectors
	MetricsPath = "/respd/metrics"
	// HealthPath answers OK while the status server is up
	HealthPath = "/respd/health"

	shutdownTimeout = time.Second
)

// Server is the status server of respd, it serves the frame and command
// metrics, the health check and everything mounted on the default mux
// (pprof and the log level handler)
type Server struct {
	statusServer *http.Server
	addr         string
}

// NewServer creates the status server for config
func NewServer(config *conf.Status) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "OK")
	})
	mux.Handle("/", http.DefaultServeMux)
	return &Server{
		addr:         config.Listen,
		statusServer: &http.Server{Handler: mux},
	}
}

// Serve accepts incoming connections on the Listener l
func (s *Server) Serve(lis net.Listener) error {
	zap.L().Info("status server start", zap.String("addr", lis.Addr().String()),
		zap.String("metrics", MetricsPath), zap.String("health", HealthPath))
	err := s.statusServer.Serve(lis)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop closes the status server at once
func (s *Server) Stop() error {
	if err := s.statusServer.Close(); err != nil {
		zap.L().Error("status server stop failed", zap.String("addr", s.addr), zap.Error(err))
		return err
	}
	zap.L().Info("status server stopped", zap.String("addr", s.addr))
	return nil
}

// GracefulStop lets in flight scrapes finish, waiting at most shutdownTimeout
func (s *Server) GracefulStop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.statusServer.Shutdown(ctx); err != nil {
		zap.L().Error("status server graceful stop failed", zap.String("addr", s.addr), zap.Error(err))
		return err
	}
	zap.L().Info("status server stopped gracefully", zap.String("addr", s.addr))
	return nil
}

// ListenAndServe listens on addr and serves status requests
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("status server listen on %s failed, %s", addr, err)
	}
	return s.Serve(lis)
}
