package command

import (
	"strconv"
	"strings"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
)

// Echo the given string
func Echo(ctx *Context) {
	Reply(ctx, resp.NewBulkString(ctx.Args[0]))
}

// Ping the server
func Ping(ctx *Context) {
	args := ctx.Args
	if len(args) > 1 {
		Reply(ctx, ErrWrongArgs(ctx.Name))
		return
	}
	if len(args) == 1 {
		Reply(ctx, resp.NewBulkString(args[0]))
		return
	}
	Reply(ctx, resp.SimpleString("PONG"))
}

// Quit asks the server to close the connection
func Quit(ctx *Context) {
	Reply(ctx, resp.SimpleString(OK))
	ctx.Client.Quit()
}

// Hello switches the protocol version and replies the server properties
// HELLO [protover [SETNAME clientname]]
func Hello(ctx *Context) {
	args := ctx.Args
	proto := ctx.Client.Protocol()
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			Reply(ctx, ErrProtocolVersion)
			return
		}
		if v != 2 && v != 3 {
			Reply(ctx, ErrNoProto)
			return
		}
		proto = v
		args = args[1:]
	}

	var name string
	setname := false
	for len(args) > 0 {
		if strings.ToLower(args[0]) != "setname" || len(args) < 2 {
			Reply(ctx, ErrSyntax)
			return
		}
		if !validClientName(args[1]) {
			Reply(ctx, ErrClientName)
			return
		}
		name, setname = args[1], true
		args = args[2:]
	}

	ctx.Client.SetProtocol(proto)
	if setname {
		ctx.Client.SetName(name)
	}

	info := resp.NewMap().
		Set("server", resp.NewBulkString("respd")).
		Set("version", resp.NewBulkString(context.ReleaseVersion)).
		Set("proto", resp.Integer(proto)).
		Set("id", resp.Integer(ctx.Client.ID)).
		Set("mode", resp.NewBulkString("standalone")).
		Set("role", resp.NewBulkString("master")).
		Set("modules", resp.Array{})
	Reply(ctx, info)
}

func validClientName(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] < '!' || name[i] > '~' {
			return false
		}
	}
	return true
}
