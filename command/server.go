package command

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
)

// Client manages client connections
func Client(ctx *Context) {
	list := func(ctx *Context) {
		now := time.Now()
		var clients []*context.ClientContext
		ctx.Server.Clients.Range(func(k, v interface{}) bool {
			clients = append(clients, v.(*context.ClientContext))
			return true
		})
		sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

		var lines []string
		for _, client := range clients {
			info := client.Info()
			age := now.Sub(info.Created) / time.Second
			idle := now.Sub(info.Updated) / time.Second
			// id=2 addr=127.0.0.1:39604 name= age=196 idle=2 resp=3 cmd=client
			line := fmt.Sprintf("id=%d addr=%s name=%s age=%d idle=%d resp=%d cmd=%s\n",
				info.ID, info.RemoteAddr, info.Name, age, idle, info.Protocol, info.LastCmd)
			lines = append(lines, line)
		}
		Reply(ctx, resp.NewBulkString(strings.Join(lines, "")))
	}
	getname := func(ctx *Context) {
		name := ctx.Client.Name()
		if len(name) != 0 {
			Reply(ctx, resp.NewBulkString(name))
			return
		}
		Reply(ctx, resp.Null{})
	}
	setname := func(ctx *Context) {
		args := ctx.Args[1:]
		if len(args) != 1 {
			Reply(ctx, ErrClientSyntax)
			return
		}
		if !validClientName(args[0]) {
			Reply(ctx, ErrClientName)
			return
		}
		ctx.Client.SetName(args[0])
		Reply(ctx, resp.SimpleString(OK))
	}

	args := ctx.Args
	switch strings.ToLower(args[0]) {
	case "id":
		ReplyInteger(ctx, ctx.Client.ID)
	case "list":
		list(ctx)
	case "getname":
		getname(ctx)
	case "setname":
		setname(ctx)
	default:
		Reply(ctx, ErrClientSyntax)
	}
}

// RedisCommand returns Array reply of details about all commands
func RedisCommand(ctx *Context) {
	describe := func(name string, cmd *Desc) resp.Frame {
		var flags resp.Set
		for _, f := range cmd.Cons.Flags.Names() {
			flags = append(flags, resp.SimpleString(f))
		}
		if flags == nil {
			flags = resp.Set{}
		}
		return resp.NewArray(
			resp.NewBulkString(name),
			resp.Integer(cmd.Cons.Arity),
			flags,
			resp.Integer(cmd.Cons.FirstKey),
			resp.Integer(cmd.Cons.LastKey),
			resp.Integer(cmd.Cons.KeyStep),
		)
	}
	info := func(ctx *Context) {
		names := ctx.Args[1:]
		reply := make(resp.Array, 0, len(names))
		for _, name := range names {
			if cmd, ok := commands[strings.ToLower(name)]; ok {
				reply = append(reply, describe(strings.ToLower(name), cmd))
			} else {
				reply = append(reply, resp.NullArray{})
			}
		}
		Reply(ctx, reply)
	}
	list := func(ctx *Context) {
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		reply := make(resp.Array, 0, len(names))
		for _, name := range names {
			reply = append(reply, describe(name, commands[name]))
		}
		Reply(ctx, reply)
	}
	args := ctx.Args
	if len(args) == 0 {
		list(ctx)
		return
	}
	switch strings.ToLower(args[0]) {
	case "count":
		ReplyInteger(ctx, int64(len(commands)))
	case "info":
		info(ctx)
	default:
		Reply(ctx, ErrSubcommand)
	}
}

// Time returns the server time
func Time(ctx *Context) {
	now := time.Now().UnixNano() / int64(time.Microsecond)
	sec := now / 1000000
	usec := now % 1000000
	Reply(ctx, resp.NewArray(
		resp.NewBulkString(strconv.FormatInt(sec, 10)),
		resp.NewBulkString(strconv.FormatInt(usec, 10)),
	))
}

// Info returns information and statistics about the server in a format that is simple to parse by computers and easy to read by humans
func Info(ctx *Context) {
	section := "all"
	if len(ctx.Args) > 0 {
		section = strings.ToLower(ctx.Args[0])
	}
	if section == "default" || section == "everything" {
		section = "all"
	}

	var lines []string
	if section == "all" || section == "server" {
		exe, err := os.Executable()
		if err != nil {
			ReplyError(ctx, "ERR "+err.Error())
			return
		}
		uptime := int64(time.Since(ctx.Server.StartAt) / time.Second)
		lines = append(lines, "# Server")
		lines = append(lines, "respd_version:"+context.ReleaseVersion)
		lines = append(lines, "respd_git_sha1:"+context.GitHash)
		lines = append(lines, "respd_build_id:"+context.BuildTS)
		lines = append(lines, "os:"+runtime.GOOS)
		lines = append(lines, "arch_bits:"+runtime.GOARCH)
		lines = append(lines, "go_version:"+context.GolangVersion)
		lines = append(lines, "process_id:"+strconv.Itoa(os.Getpid()))
		lines = append(lines, "uptime_in_seconds:"+strconv.FormatInt(uptime, 10))
		lines = append(lines, "uptime_in_days:"+strconv.FormatInt(uptime/86400, 10))
		lines = append(lines, "executable:"+exe)
	}

	if section == "all" || section == "clients" {
		var numberOfClients int
		ctx.Server.Clients.Range(func(k, v interface{}) bool {
			numberOfClients++
			return true
		})
		lines = append(lines, "# Clients")
		lines = append(lines, "connected_clients:"+strconv.Itoa(numberOfClients))
		lines = append(lines, "maxclients:"+strconv.FormatInt(ctx.Server.MaxConns, 10))
		lines = append(lines, "client_read_buffer:"+strconv.Itoa(ctx.Server.ReadBuffer))
		lines = append(lines, "client_max_buffer:"+strconv.Itoa(ctx.Server.MaxBuffer))
	}

	if section == "all" || section == "commandstats" {
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		lines = append(lines, "# Commandstats")
		for _, name := range names {
			calls, usec := commands[name].Stat.Load()
			if calls == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("cmdstat_%s:calls=%d,usec=%d,usec_per_call=%.2f",
				name, calls, usec, float64(usec)/float64(calls)))
		}
	}

	Reply(ctx, resp.NewBulkString(strings.Join(lines, "\r\n")+"\r\n"))
}
