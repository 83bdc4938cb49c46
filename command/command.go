package command

import (
	"io"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

// Context is the runtime context of a command
type Context struct {
	Name    string
	Args    []string
	Out     io.Writer
	TraceID string
	*context.Context
}

// Command is a redis command implementation
type Command func(ctx *Context)

// Call a command
func Call(ctx *Context) {
	ctx.Name = strings.ToLower(ctx.Name)

	desc, ok := commands[ctx.Name]
	if !ok {
		Reply(ctx, ErrUnKnownCommand(ctx.Name))
		return
	}
	argc := len(ctx.Args) + 1 // include the command name
	arity := desc.Cons.Arity

	if arity > 0 && argc != arity {
		Reply(ctx, ErrWrongArgs(ctx.Name))
		return
	}

	if arity < 0 && argc < -arity {
		Reply(ctx, ErrWrongArgs(ctx.Name))
		return
	}

	start := time.Now()
	desc.Proc(ctx)
	desc.Stat.record(time.Since(start))
}

// Reply writes f to the client in the dialect it negotiated and counts it by
// type. Until HELLO 3 the RESP3 only types are downgraded to RESP2.
func Reply(ctx *Context, f resp.Frame) {
	var b []byte
	if ctx.Client.Protocol() >= 3 {
		b = resp.Encode(f)
	} else {
		b = resp.EncodeResp2(f)
	}
	if _, err := ctx.Out.Write(b); err != nil {
		zap.L().Debug("reply failed", zap.String("command", ctx.Name),
			zap.String("traceid", ctx.TraceID), zap.Error(err))
		return
	}
	label := "null"
	if f != nil {
		label = f.Type().String()
	}
	metrics.GetMetrics().FramesEncodedCounterVec.WithLabelValues(label).Inc()
}

// ReplyError writes an error line to the client
func ReplyError(ctx *Context, msg string) {
	Reply(ctx, resp.NewSimpleError(msg))
}

// ReplyInteger writes n, signed for RESP3 clients and plain for RESP2
func ReplyInteger(ctx *Context, n int64) {
	Reply(ctx, resp.Integer(n))
}

// Executor execute any command
type Executor struct {
	commands map[string]*Desc
}

// NewExecutor new a Executor object
func NewExecutor() *Executor {
	return &Executor{commands: commands}
}

// Execute a command
func (e *Executor) Execute(ctx *Context) {
	start := time.Now()
	Call(ctx)
	cost := time.Since(start).Seconds()

	label := ctx.Name
	if _, ok := e.commands[label]; !ok {
		label = "unknown"
	}
	metrics.GetMetrics().CommandCallHistogramVec.WithLabelValues(label).Observe(cost)
}

// Desc combines command procedure, constraint and statistics
type Desc struct {
	Proc Command
	Stat Statistic
	Cons Constraint
}

// Statistic counts the calls of a command
type Statistic struct {
	Calls        int64
	Microseconds int64
}

func (s *Statistic) record(cost time.Duration) {
	atomic.AddInt64(&s.Calls, 1)
	atomic.AddInt64(&s.Microseconds, cost.Nanoseconds()/int64(time.Microsecond))
}

// Load returns the number of calls and the total microseconds spent
func (s *Statistic) Load() (int64, int64) {
	return atomic.LoadInt64(&s.Calls), atomic.LoadInt64(&s.Microseconds)
}
