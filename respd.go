package respd

import (
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/distributedio/respd/command"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

//Server implements the RESP3 protocol server
type Server struct {
	servCtx *context.ServerContext
	idgen   func() int64

	mu  sync.Mutex
	lis net.Listener
}

//New a server instance
func New(ctx *context.ServerContext) *Server {
	// id generator starts from 1(the first client's id is 2, the same as redis)
	return &Server{servCtx: ctx, idgen: GetClientID()}
}

// NewServerContext builds the server context from the server config
func NewServerContext(config *conf.Server) *context.ServerContext {
	return &context.ServerContext{
		MaxConns:    config.MaxConnection,
		ReadBuffer:  config.ReadBuffer,
		MaxBuffer:   config.MaxBuffer,
		IdleTimeout: config.IdleTimeout,
	}
}

//Serve the RESP requests
func (s *Server) Serve(lis net.Listener) error {
	zap.L().Info("respd server start", zap.String("addr", lis.Addr().String()))
	s.servCtx.StartAt = time.Now()
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()

	exec := command.NewExecutor()
	for {
		conn, err := lis.Accept()
		if err != nil {
			zap.L().Error("server accept failed", zap.String("addr", lis.Addr().String()), zap.Error(err))
			return err
		}

		if !s.servCtx.AddConnection() {
			s.servCtx.DoneConnection()
			metrics.GetMetrics().ConnectionRejectedCounter.Inc()
			zap.L().Warn("max number of clients reached", zap.String("addr", conn.RemoteAddr().String()),
				zap.Int64("max-connection", s.servCtx.MaxConns))
			resp.Reply(conn, command.ErrMaxClients)
			conn.Close()
			continue
		}

		cliCtx := context.NewClientContext(s.idgen(), conn)
		s.servCtx.Clients.Store(cliCtx.ID, cliCtx)

		cli := newClient(cliCtx, s, exec)

		zap.L().Info("recv connection", zap.String("addr", cliCtx.RemoteAddr),
			zap.Int64("clientid", cliCtx.ID))

		go func(cli *client, conn net.Conn) {
			metrics.GetMetrics().ConnectionOnlineGauge.Inc()
			if err := cli.serve(conn); err != nil {
				zap.L().Error("serve conn failed", zap.String("addr", cli.cliCtx.RemoteAddr),
					zap.Int64("clientid", cli.cliCtx.ID), zap.Error(err))
			}
			metrics.GetMetrics().ConnectionOnlineGauge.Dec()
			s.servCtx.Clients.Delete(cli.cliCtx.ID)
			s.servCtx.DoneConnection()
		}(cli, conn)
	}
}

// ListenAndServe serves on a specified address
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

//Stop the server
func (s *Server) Stop() error {
	s.mu.Lock()
	lis := s.lis
	s.mu.Unlock()
	if lis == nil {
		return nil
	}
	zap.L().Info("respd serve stop", zap.String("addr", lis.Addr().String()))
	return lis.Close()
}

//GracefulStop the server, close the listener and then ask every client to quit
func (s *Server) GracefulStop() error {
	s.mu.Lock()
	lis := s.lis
	s.mu.Unlock()
	if lis == nil {
		return nil
	}
	zap.L().Info("respd serve graceful", zap.String("addr", lis.Addr().String()))
	err := lis.Close()
	s.servCtx.Clients.Range(func(k, v interface{}) bool {
		v.(*context.ClientContext).Quit()
		return true
	})
	return err
}
