package command

import (
	"fmt"

	"github.com/distributedio/respd/encoding/resp"
)

// OK is the status line of a successful command
const OK = "OK"

// Error replies shared by the commands. Each one is already a RESP error
// frame, its Error text is the line written after the '-' prefix.
var (
	ErrProtocol        = resp.SimpleError("ERR Protocol error")
	ErrSyntax          = resp.SimpleError("ERR syntax error")
	ErrNoProto         = resp.SimpleError("NOPROTO unsupported protocol version")
	ErrProtocolVersion = resp.SimpleError("ERR Protocol version is not an integer or out of range")
	ErrClientName      = resp.SimpleError("ERR Client names cannot contain spaces, newlines or special characters.")
	ErrClientSyntax    = resp.SimpleError("ERR Syntax error, try CLIENT (ID | LIST | GETNAME | SETNAME)")
	ErrSubcommand      = resp.SimpleError("ERR Unknown subcommand or wrong number of arguments.")
	ErrMaxClients      = resp.SimpleError("ERR max number of clients reached")
)

// ErrUnKnownCommand is the reply to a command name that is not registered
func ErrUnKnownCommand(cmd string) resp.SimpleError {
	return resp.NewSimpleError(fmt.Sprintf("ERR unknown command '%s'", cmd))
}

// ErrWrongArgs is the reply to a call that breaks the command arity
func ErrWrongArgs(cmd string) resp.SimpleError {
	return resp.NewSimpleError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", cmd))
}

// ErrProtocolDetail tells the client why its request could not be decoded
// before the connection is closed
func ErrProtocolDetail(err error) resp.SimpleError {
	return resp.NewSimpleError(fmt.Sprintf("%s: %s", ErrProtocol, err))
}
