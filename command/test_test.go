package command

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
)

func ContextTest(name string, args ...string) *Context {
	cliCtx := &context.ClientContext{
		ID:      2,
		Created: time.Now(),
		Done:    make(chan struct{}),
	}
	servCtx := &context.ServerContext{
		StartAt: time.Now(),
	}
	servCtx.Clients.Store(cliCtx.ID, cliCtx)
	rootCtx, _ := context.WithCancel(context.New(cliCtx, servCtx))
	return &Context{
		Name:    name,
		Args:    args,
		Out:     &bytes.Buffer{},
		Context: rootCtx,
	}
}

func CallTest(name string, args ...string) *bytes.Buffer {
	ctx := ContextTest(name, args...)
	Call(ctx)
	return ctx.Out.(*bytes.Buffer)
}

func ctxString(buf io.Writer) string {
	return buf.(*bytes.Buffer).String()
}

func ctxLines(buf io.Writer) []string {
	str := ctxString(buf)
	return strings.Split(str, "\r\n")
}

// ctxFrame decodes the single reply written to buf
func ctxFrame(buf io.Writer) (resp.Frame, error) {
	b := buf.(*bytes.Buffer).Bytes()
	f, n, err := resp.Decode(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, io.ErrShortBuffer
	}
	return f, nil
}
