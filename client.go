package respd

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/distributedio/respd/command"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

// errNotCommand is returned for a well formed frame that can not be a command
var errNotCommand = errors.New("expected an array of strings")

type client struct {
	cliCtx *context.ClientContext
	server *Server
	conn   net.Conn
	exec   *command.Executor
	r      *resp.Reader
	w      *bufio.Writer
}

func newClient(cliCtx *context.ClientContext, s *Server, exec *command.Executor) *client {
	return &client{
		cliCtx: cliCtx,
		server: s,
		exec:   exec,
	}
}

// Write to conn and log error if needed
func (c *client) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if err != nil {
		zap.L().Error("write net failed", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID),
			zap.String("command", c.cliCtx.LastCmd()), zap.Error(err))
		c.conn.Close()
	}
	return n, err
}

func (c *client) flush() error {
	if err := c.w.Flush(); err != nil {
		zap.L().Error("flush net failed", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID), zap.Error(err))
		return err
	}
	return nil
}

func (c *client) serve(conn net.Conn) error {
	servCtx := c.server.servCtx
	c.conn = conn
	c.r = resp.NewReaderSize(conn, servCtx.ReadBuffer, servCtx.MaxBuffer)
	c.w = bufio.NewWriter(conn)

	rootCtx, rootCancel := context.WithCancel(context.New(c.cliCtx, servCtx))
	defer rootCancel()

	// Use a separate goroutine to keep reading commands
	// then we can detect a closed connection as soon as possible.
	// It only works when the cmd channel is not blocked
	cmdc := make(chan []string, 128)
	errc := make(chan error, 1)
	go func() {
		for {
			cmd, err := c.readCommand()
			if err != nil {
				errc <- err
				rootCancel()
				return
			}
			select {
			case cmdc <- cmd:
			case <-rootCtx.Done():
				return
			}
		}
	}()

	var cmd []string
	var err error
	for {
		select {
		case <-c.cliCtx.Done:
			c.flush()
			return c.conn.Close()
		case cmd = <-cmdc:
		case err = <-errc:
			return c.closeWithError(err)
		}

		if len(cmd) == 0 {
			continue
		}

		c.cliCtx.Touch(strings.ToLower(cmd[0]))

		ctx := &command.Context{
			Name:    cmd[0],
			Args:    cmd[1:],
			Out:     c,
			TraceID: GenerateTraceID(),
		}
		ctx.Context = rootCtx

		if env := zap.L().Check(zap.DebugLevel, "recv client command"); env != nil {
			env.Write(zap.String("addr", c.cliCtx.RemoteAddr),
				zap.Int64("clientid", c.cliCtx.ID),
				zap.String("traceid", ctx.TraceID),
				zap.String("command", ctx.Name))
		}
		c.exec.Execute(ctx)

		// replies of a pipeline are sent together
		if len(cmdc) == 0 {
			if err := c.flush(); err != nil {
				c.conn.Close()
				return err
			}
		}
	}
}

// closeWithError ends the connection after a read failure, a protocol
// error is reported to the peer before closing
func (c *client) closeWithError(err error) error {
	defer c.conn.Close()
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		zap.L().Info("connection closed by peer", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID), zap.Error(err))
		return nil
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		zap.L().Info("connection idle timeout", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID), zap.Duration("idle-timeout", c.server.servCtx.IdleTimeout))
		return nil
	}
	if isProtocolError(err) {
		metrics.GetMetrics().DecodeErrorsCounterVec.WithLabelValues(metrics.ErrorKind(err)).Inc()
		zap.L().Warn("protocol error", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID), zap.Error(err))
		resp.Reply(c.w, command.ErrProtocolDetail(err))
		c.flush()
		return nil
	}
	zap.L().Error("read command failed", zap.String("addr", c.cliCtx.RemoteAddr),
		zap.Int64("clientid", c.cliCtx.ID), zap.Error(err))
	return err
}

func isProtocolError(err error) bool {
	var fe *resp.FrameError
	return errors.As(err, &fe) || errors.Is(err, resp.ErrFrameTooLarge) || errors.Is(err, errNotCommand)
}

func (c *client) readInlineCommand() ([]string, error) {
	line, err := c.r.ReadLine()
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(line)), nil
}

func (c *client) readCommand() ([]string, error) {
	if timeout := c.server.servCtx.IdleTimeout; timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
	}
	p, err := c.r.Peek()
	if err != nil {
		return nil, err
	}
	// not a frame
	if !resp.Type(p).Valid() {
		return c.readInlineCommand()
	}

	before := c.r.Stats()
	f, err := c.r.ReadFrame()
	after := c.r.Stats()
	mt := metrics.GetMetrics()
	if n := after.Incomplete - before.Incomplete; n > 0 {
		mt.IncompleteReadsCounter.Add(float64(n))
	}
	if err != nil {
		return nil, err
	}
	mt.FramesDecodedCounterVec.WithLabelValues(f.Type().String()).Inc()
	mt.FrameBytesHistogram.Observe(float64(after.Bytes - before.Bytes))
	return commandArgs(f)
}

// commandArgs flattens a request frame into the command name and its arguments
func commandArgs(f resp.Frame) ([]string, error) {
	arr, ok := f.(resp.Array)
	if !ok {
		return nil, errNotCommand
	}
	argv := make([]string, len(arr))
	for i, arg := range arr {
		switch v := arg.(type) {
		case resp.BulkString:
			argv[i] = string(v)
		case resp.SimpleString:
			argv[i] = string(v)
		default:
			return nil, errNotCommand
		}
	}
	return argv, nil
}
